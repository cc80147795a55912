package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// smoketest 走一遍完整履约链路：
// 建商品 -> 下单 -> 结算 -> 支付 -> 填数据 -> 上传绑定 -> 提交 ->
// 管理员打回 -> 买家整改 -> 重新提交 -> 通过 -> confirmed。
// 需要 server 与其依赖（Redis/Kafka/MinIO）已启动。

func main() {
	baseURL := flag.String("base", "http://localhost:8080", "server base url")
	adminToken := flag.String("admin-token", "dev-admin-token", "admin token")
	userID := flag.Int64("user", 10001, "buyer user id")
	flag.Parse()

	client := &http.Client{Timeout: 10 * time.Second}
	st := &smoke{client: client, base: *baseURL, admin: *adminToken, userID: *userID}

	// 1) 商品：一个文本项 + 一个必填图片项
	productID := st.createProduct()
	fmt.Println("product created:", productID)

	// 2) 下单 2 件并走到采集阶段
	orderNo := st.createOrder(productID, 2)
	fmt.Println("order created:", orderNo)
	st.post("/api/orders/"+orderNo+"/checkout", nil, nil)
	st.post("/api/orders/"+orderNo+"/payment", nil, nil)
	st.expectStatus(orderNo, "awaiting_data")

	// 3) 半填状态提交必须失败
	itemID := st.firstItemID(orderNo)
	slot1 := fmt.Sprintf("%d:1", itemID)
	slot2 := fmt.Sprintf("%d:2", itemID)
	st.putValue(orderNo, slot1, "engraving", "生日快乐")
	if st.tryPost("/api/orders/"+orderNo+"/submit", nil) == http.StatusOK {
		panic("submit with incomplete data must fail")
	}

	// 4) 补齐两件的数据并提交审核
	file1 := st.upload("photo1.png")
	file2 := st.upload("photo2.png")
	st.bindFile(orderNo, slot1, "photo", file1)
	st.putValue(orderNo, slot2, "engraving", "周年纪念")
	st.bindFile(orderNo, slot2, "photo", file2)
	st.post("/api/orders/"+orderNo+"/submit", nil, nil)
	st.expectStatus(orderNo, "data_reviewing")

	// 5) 管理员：通过第 1 件，打回第 2 件 -> revision_required
	st.adminPost("/api/admin/uploads/"+file1+"/approve", map[string]any{"notes": ""})
	st.adminPost("/api/admin/uploads/"+file2+"/reject", map[string]any{"notes": "图片分辨率过低"})
	st.expectStatus(orderNo, "revision_required")

	// 6) 买家整改：确认返修、换新图、重新提交
	st.post("/api/orders/"+orderNo+"/revision/ack", nil, nil)
	file3 := st.upload("photo2_fixed.png")
	st.bindFile(orderNo, slot2, "photo", file3)
	st.post("/api/orders/"+orderNo+"/submit", nil, nil)

	// 7) 管理员通过新图 -> confirmed
	st.adminPost("/api/admin/uploads/"+file3+"/approve", map[string]any{"notes": ""})
	st.expectStatus(orderNo, "confirmed")

	// 8) 运营推进到签收
	st.adminPost("/api/admin/orders/"+orderNo+"/process", nil)
	st.adminPost("/api/admin/orders/"+orderNo+"/ship", nil)
	st.adminPost("/api/admin/orders/"+orderNo+"/deliver", nil)
	st.expectStatus(orderNo, "delivered")

	fmt.Println("smoketest passed, order:", orderNo)
}

type smoke struct {
	client *http.Client
	base   string
	admin  string
	userID int64
}

func (s *smoke) createProduct() uint {
	body := map[string]any{
		"name":  "定制亚克力立牌",
		"price": 5900,
		"requirement_schema": []map[string]any{
			{"key": "engraving", "type": "text", "label": "刻字内容", "required": true, "max_length": 30},
			{"key": "photo", "type": "file", "label": "定制图片", "required": true,
				"accept": []string{".png", ".jpg", "image/*"}, "max_size_mb": 10},
		},
	}
	var out struct {
		Data struct {
			ID uint `json:"id"`
		} `json:"data"`
	}
	s.post("/api/products", body, &out)
	return out.Data.ID
}

func (s *smoke) createOrder(productID uint, qty int) string {
	body := map[string]any{
		"user_id": s.userID,
		"lines":   []map[string]any{{"product_id": productID, "quantity": qty}},
	}
	var out struct {
		Data struct {
			OrderNo string `json:"order_no"`
		} `json:"data"`
	}
	s.post("/api/orders", body, &out)
	return out.Data.OrderNo
}

func (s *smoke) firstItemID(orderNo string) uint {
	var out struct {
		Data struct {
			Slots []struct {
				ItemID uint `json:"item_id"`
			} `json:"slots"`
		} `json:"data"`
	}
	s.get("/api/orders/"+orderNo, &out)
	if len(out.Data.Slots) == 0 {
		panic("order has no collection slots")
	}
	return out.Data.Slots[0].ItemID
}

func (s *smoke) putValue(orderNo, slotID, key, value string) {
	s.put("/api/orders/"+orderNo+"/values", map[string]any{
		"slot_id": slotID, "input_key": key, "value": value,
	})
}

func (s *smoke) bindFile(orderNo, slotID, key, fileID string) {
	s.put("/api/orders/"+orderNo+"/values", map[string]any{
		"slot_id": slotID, "input_key": key, "file_id": fileID,
	})
}

// upload 以 multipart 上传一个小 PNG（只验证链路，不关心内容）。
func (s *smoke) upload(name string) string {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("user_id", fmt.Sprintf("%d", s.userID))
	fw, _ := mw.CreateFormFile("file", name)
	_, _ = fw.Write([]byte("\x89PNG\r\n\x1a\nfake-png-bytes"))
	_ = mw.Close()

	req, _ := http.NewRequest(http.MethodPost, s.base+"/api/uploads", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := s.client.Do(req)
	if err != nil {
		panic(fmt.Sprintf("upload %s: %v", name, err))
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		panic(fmt.Sprintf("upload %s: status=%d body=%s", name, resp.StatusCode, b))
	}

	var out struct {
		Data struct {
			FileID string `json:"file_id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(b, &out); err != nil {
		panic(err)
	}
	return out.Data.FileID
}

func (s *smoke) expectStatus(orderNo, want string) {
	var out struct {
		Data struct {
			Status string `json:"status"`
		} `json:"data"`
	}
	s.get("/api/orders/"+orderNo+"/status", &out)
	if out.Data.Status != want {
		panic(fmt.Sprintf("order %s: status=%s want=%s", orderNo, out.Data.Status, want))
	}
	fmt.Printf("order %s -> %s\n", orderNo, want)
}

func (s *smoke) get(path string, out any) {
	resp, err := s.client.Get(s.base + path)
	if err != nil {
		panic(fmt.Sprintf("GET %s: %v", path, err))
	}
	s.decode(path, resp, out)
}

func (s *smoke) post(path string, body, out any) {
	s.do(http.MethodPost, path, body, out, nil)
}

func (s *smoke) put(path string, body any) {
	s.do(http.MethodPut, path, body, nil, nil)
}

func (s *smoke) adminPost(path string, body any) {
	s.do(http.MethodPost, path, body, nil, map[string]string{"X-Admin-Token": s.admin})
}

// tryPost 只返回状态码，不把非 200 当作失败。
func (s *smoke) tryPost(path string, body any) int {
	var r io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		r = bytes.NewReader(b)
	}
	req, _ := http.NewRequest(http.MethodPost, s.base+path, r)
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.client.Do(req)
	if err != nil {
		panic(fmt.Sprintf("POST %s: %v", path, err))
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode
}

func (s *smoke) do(method, path string, body, out any, headers map[string]string) {
	var r io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		r = bytes.NewReader(b)
	}
	req, _ := http.NewRequest(method, s.base+path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		panic(fmt.Sprintf("%s %s: %v", method, path, err))
	}
	s.decode(path, resp, out)
}

func (s *smoke) decode(path string, resp *http.Response, out any) {
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		panic(fmt.Sprintf("%s: status=%d body=%s", path, resp.StatusCode, b))
	}
	if out != nil {
		if err := json.Unmarshal(b, out); err != nil {
			panic(fmt.Sprintf("%s: decode: %v", path, err))
		}
	}
}
