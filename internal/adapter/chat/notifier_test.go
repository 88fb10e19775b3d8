package chat

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/balwinder10003-code/ATTRAAH/internal/usecase"
)

func TestFillImagePrefersGatewayRef(t *testing.T) {
	var cmd sendCommand
	fillImage(&cmd, usecase.Image{Ref: "file-42", PNG: []byte{1, 2, 3}})
	assert.Equal(t, "file-42", cmd.ImageRef)
	assert.Empty(t, cmd.ImagePNG, "ref send must not also ship bytes")
}

func TestFillImageEncodesPNG(t *testing.T) {
	var cmd sendCommand
	fillImage(&cmd, usecase.Image{PNG: []byte("png-bytes")})
	assert.Empty(t, cmd.ImageRef)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("png-bytes")), cmd.ImagePNG)
}

func TestActionDTOsPreserveOrder(t *testing.T) {
	out := toActionDTOs([]usecase.Action{
		{Label: "✅ Approve", Token: "tok-a"},
		{Label: "❌ Reject", Token: "tok-b"},
	})
	assert.Equal(t, []actionDTO{
		{Label: "✅ Approve", Token: "tok-a"},
		{Label: "❌ Reject", Token: "tok-b"},
	}, out)
}
