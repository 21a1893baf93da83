package observability

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskIdentity(t *testing.T) {
	assert.Equal(t, "160*****266", MaskIdentity("16049008266"))
	assert.Equal(t, "***********", MaskIdentity("123"))
	assert.Equal(t, "***********", MaskIdentity(""))
}

func TestMaskSensitiveData(t *testing.T) {
	masked := MaskSensitiveData(map[string]interface{}{
		"full_name": "Ada Lovelace",
		"phone":     "+905321234567",
		"district":  "Kadikoy",
	})

	assert.Equal(t, "********", masked["full_name"])
	assert.Equal(t, "********", masked["phone"])
	assert.Equal(t, "Kadikoy", masked["district"])
}
