package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequirementSchemaValidate(t *testing.T) {
	valid := RequirementSchema{
		{Key: "engraving", Type: InputText, Label: "刻字内容", Required: true, MaxLength: 30},
		{Key: "photo", Type: InputFile, Label: "定制图片", Required: true, Accept: []string{".png"}, MaxSizeMB: 10},
		{Key: "note_url", Type: InputURL, Label: "参考链接"},
	}

	tests := []struct {
		name    string
		schema  RequirementSchema
		wantKey string // 期望错误指向的 key，空串表示校验通过
	}{
		{name: "valid schema", schema: valid},
		{name: "empty schema is legal", schema: nil},
		{
			name:    "empty key",
			schema:  RequirementSchema{{Key: "  ", Type: InputText}},
			wantKey: "",
		},
		{
			name: "duplicate key",
			schema: RequirementSchema{
				{Key: "photo", Type: InputText},
				{Key: "photo", Type: InputText},
			},
			wantKey: "photo",
		},
		{
			name:    "unsupported type",
			schema:  RequirementSchema{{Key: "color", Type: "dropdown"}},
			wantKey: "color",
		},
		{
			name:    "file without accept",
			schema:  RequirementSchema{{Key: "photo", Type: InputFile, MaxSizeMB: 10}},
			wantKey: "photo",
		},
		{
			name:    "file without max size",
			schema:  RequirementSchema{{Key: "photo", Type: InputFile, Accept: []string{".png"}}},
			wantKey: "photo",
		},
		{
			name:    "negative max length",
			schema:  RequirementSchema{{Key: "engraving", Type: InputText, MaxLength: -1}},
			wantKey: "engraving",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.schema.Validate()
			if tt.name == "valid schema" || tt.name == "empty schema is legal" {
				assert.NoError(t, err)
				return
			}
			var ve *SchemaValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantKey, ve.Key)
		})
	}
}

func TestInputType(t *testing.T) {
	assert.True(t, InputText.Scalar())
	assert.True(t, InputURL.Scalar())
	assert.True(t, InputDate.Scalar())
	assert.False(t, InputFile.Scalar())

	assert.True(t, InputFile.Valid())
	assert.False(t, InputType("dropdown").Valid())
}

func TestRequirementSchemaFind(t *testing.T) {
	s := RequirementSchema{
		{Key: "engraving", Type: InputText},
		{Key: "photo", Type: InputFile},
	}

	spec, ok := s.Find("photo")
	require.True(t, ok)
	assert.Equal(t, InputFile, spec.Type)

	_, ok = s.Find("missing")
	assert.False(t, ok)
}

func TestRequirementSchemaScan(t *testing.T) {
	src := RequirementSchema{
		{Key: "photo", Type: InputFile, Required: true, Accept: []string{".png", "image/*"}, MaxSizeMB: 5},
	}
	v, err := src.Value()
	require.NoError(t, err)

	var got RequirementSchema
	require.NoError(t, got.Scan(v))
	assert.Equal(t, src, got)

	// 空 schema 落 NULL，读回仍是空
	v, err = RequirementSchema(nil).Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	var empty RequirementSchema
	require.NoError(t, empty.Scan(nil))
	assert.True(t, empty.Empty())
}
