package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// InputType 表示买家需要提交的单个数据项类型。
type InputType string

const (
	InputText InputType = "text"
	InputURL  InputType = "url"
	InputDate InputType = "date"
	InputFile InputType = "file"
)

// Valid 判断类型是否是受支持的四种之一。
func (t InputType) Valid() bool {
	switch t {
	case InputText, InputURL, InputDate, InputFile:
		return true
	}
	return false
}

// Scalar 标量类型直接存字符串值，文件类型走 Upload 绑定。
func (t InputType) Scalar() bool {
	return t == InputText || t == InputURL || t == InputDate
}

// InputSpec 描述商品要求买家提交的一项数据。
// 下单时随商品快照到订单项，之后目录怎么改都不影响已开订单。
type InputSpec struct {
	Key      string    `json:"key"`
	Type     InputType `json:"type"`
	Label    string    `json:"label"`
	Required bool      `json:"required"`

	// 文本类约束
	MaxLength int `json:"max_length,omitempty"`
	// 文件类约束：accept 为扩展名/类型列表，尺寸单位 MB
	Accept    []string `json:"accept,omitempty"`
	MaxSizeMB int      `json:"max_size_mb,omitempty"`
}

// RequirementSchema 是按顺序排列的数据采集声明。空 schema 合法，表示无需采集。
type RequirementSchema []InputSpec

// SchemaValidationError 在目录编辑阶段暴露 schema 配置错误，订单阶段不会出现。
type SchemaValidationError struct {
	Key    string
	Reason string
}

func (e *SchemaValidationError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("schema invalid: %s", e.Reason)
	}
	return fmt.Sprintf("schema invalid: input %q %s", e.Key, e.Reason)
}

// Validate 校验 schema：key 非空且唯一、类型受支持、文件类约束齐全。
func (s RequirementSchema) Validate() error {
	seen := make(map[string]struct{}, len(s))
	for _, in := range s {
		key := strings.TrimSpace(in.Key)
		if key == "" {
			return &SchemaValidationError{Reason: "key must not be empty"}
		}
		if _, dup := seen[key]; dup {
			return &SchemaValidationError{Key: key, Reason: "duplicates another key"}
		}
		seen[key] = struct{}{}

		if !in.Type.Valid() {
			return &SchemaValidationError{Key: key, Reason: fmt.Sprintf("has unsupported type %q", in.Type)}
		}
		if in.Type == InputFile {
			if len(in.Accept) == 0 {
				return &SchemaValidationError{Key: key, Reason: "file input requires a non-empty accept list"}
			}
			if in.MaxSizeMB <= 0 {
				return &SchemaValidationError{Key: key, Reason: "file input requires max_size_mb > 0"}
			}
		}
		if in.MaxLength < 0 {
			return &SchemaValidationError{Key: key, Reason: "max_length must not be negative"}
		}
	}
	return nil
}

// Empty 为 true 时该 schema 不产生任何采集槽位。
func (s RequirementSchema) Empty() bool { return len(s) == 0 }

// Find 按 key 查找输入声明。
func (s RequirementSchema) Find(key string) (InputSpec, bool) {
	for _, in := range s {
		if in.Key == key {
			return in, true
		}
	}
	return InputSpec{}, false
}

// Value 让 gorm 以 JSON 文本落库；空 schema 存 NULL。
func (s RequirementSchema) Value() (driver.Value, error) {
	if len(s) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan 从 JSON 文本恢复 schema 快照。
func (s *RequirementSchema) Scan(src any) error {
	if src == nil {
		*s = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("unsupported schema column type %T", src)
	}
}
