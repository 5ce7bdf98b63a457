package draft

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strconv"

	"github.com/farah-rezgui/ecume-admin/internal/backoffice"
)

// productFields is the JSON shape POST /prod/addProduit expects.
// Keys follow the server's field names.
type productFields struct {
	Title         string  `json:"titre"`
	Description   string  `json:"description"`
	Image         string  `json:"image,omitempty"`
	Price         float64 `json:"prix"`
	StockQuantity int     `json:"quantityStock"`
}

// BuildPayload encodes the draft for submission. Drafts with staged assets
// become multipart/form-data carrying the files; scalar-only drafts become
// a JSON body. The payload is a snapshot: later edits to the draft do not
// affect a payload already built.
func (d *Draft) BuildPayload() (*backoffice.Payload, error) {
	if d.staging != nil && d.staging.Count() > 0 {
		return d.buildMultipartPayload()
	}
	return d.buildJSONPayload()
}

// buildJSONPayload encodes the scalar fields as a JSON body
func (d *Draft) buildJSONPayload() (*backoffice.Payload, error) {
	body, err := json.Marshal(productFields{
		Title:         d.Title,
		Description:   d.Description,
		Image:         d.ImageURL,
		Price:         d.Price,
		StockQuantity: d.StockQuantity,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode draft: %w", err)
	}

	return &backoffice.Payload{
		ContentType: "application/json",
		Body:        body,
	}, nil
}

// buildMultipartPayload encodes the scalar fields plus every staged asset
// as multipart/form-data
func (d *Draft) buildMultipartPayload() (*backoffice.Payload, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	fields := map[string]string{
		"titre":         d.Title,
		"description":   d.Description,
		"prix":          strconv.FormatFloat(d.Price, 'f', -1, 64),
		"quantityStock": strconv.Itoa(d.StockQuantity),
	}
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return nil, fmt.Errorf("failed to write field %s: %w", key, err)
		}
	}

	for _, asset := range d.staging.Assets() {
		part, err := writer.CreatePart(fileHeader("images", asset.Name, asset.MIME))
		if err != nil {
			return nil, fmt.Errorf("failed to create part for %s: %w", asset.Name, err)
		}
		if _, err := part.Write(asset.Data); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", asset.Name, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	return &backoffice.Payload{
		ContentType: writer.FormDataContentType(),
		Body:        buf.Bytes(),
	}, nil
}

// fileHeader builds a multipart part header carrying the asset's real MIME
// type. CreateFormFile would hardcode application/octet-stream.
func fileHeader(fieldName, fileName, mimeType string) textproto.MIMEHeader {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name=%q; filename=%q`, fieldName, fileName))
	h.Set("Content-Type", mimeType)
	return h
}
