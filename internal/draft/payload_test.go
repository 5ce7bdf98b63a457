package draft

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"strings"
	"testing"
)

func TestBuildPayload_ScalarDraftIsJSON(t *testing.T) {
	d := validScalarDraft()

	payload, err := d.BuildPayload()
	if err != nil {
		t.Fatalf("BuildPayload() error = %v", err)
	}
	if payload.ContentType != "application/json" {
		t.Errorf("ContentType = %q, want application/json", payload.ContentType)
	}
	if payload.IsMultipart() {
		t.Error("IsMultipart() = true for a scalar draft")
	}

	var fields map[string]interface{}
	if err := json.Unmarshal(payload.Body, &fields); err != nil {
		t.Fatalf("body is not valid JSON: %v", err)
	}
	if fields["titre"] != "Chair" {
		t.Errorf("titre = %v", fields["titre"])
	}
	if fields["prix"] != 49.99 {
		t.Errorf("prix = %v", fields["prix"])
	}
	if fields["quantityStock"] != float64(5) {
		t.Errorf("quantityStock = %v", fields["quantityStock"])
	}
	if _, present := fields["image"]; present {
		t.Error("empty image URL should be omitted from the JSON body")
	}
}

func TestBuildPayload_ImageURLCarriedInJSON(t *testing.T) {
	d := validScalarDraft()
	d.ImageURL = "http://cdn.example.com/chair.jpg"

	payload, err := d.BuildPayload()
	if err != nil {
		t.Fatalf("BuildPayload() error = %v", err)
	}
	if !strings.Contains(string(payload.Body), "http://cdn.example.com/chair.jpg") {
		t.Errorf("body = %s, want image URL carried over", payload.Body)
	}
}

func TestBuildPayload_StagedAssetsBecomeMultipart(t *testing.T) {
	d := NewWithStaging(newFakeStaging())
	d.Title = "Chair"
	d.Description = "A wooden chair"
	d.Price = 49.99
	d.StockQuantity = 5
	files := []FileSelection{jpegSelection("front.jpg"), pngSelection("side.png")}
	if err := d.Staging().AddFiles(files); err != nil {
		t.Fatalf("AddFiles() error = %v", err)
	}

	payload, err := d.BuildPayload()
	if err != nil {
		t.Fatalf("BuildPayload() error = %v", err)
	}
	if !payload.IsMultipart() {
		t.Fatalf("ContentType = %q, want multipart/form-data", payload.ContentType)
	}

	mediaType, params, err := mime.ParseMediaType(payload.ContentType)
	if err != nil || mediaType != "multipart/form-data" {
		t.Fatalf("ParseMediaType(%q) = %v, %v", payload.ContentType, mediaType, err)
	}

	reader := multipart.NewReader(bytes.NewReader(payload.Body), params["boundary"])
	scalars := map[string]string{}
	var fileNames, fileTypes []string
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("NextPart() error = %v", err)
		}
		data, _ := io.ReadAll(part)
		if part.FileName() != "" {
			if part.FormName() != "images" {
				t.Errorf("file part field = %q, want images", part.FormName())
			}
			fileNames = append(fileNames, part.FileName())
			fileTypes = append(fileTypes, part.Header.Get("Content-Type"))
		} else {
			scalars[part.FormName()] = string(data)
		}
	}

	want := map[string]string{
		"titre":         "Chair",
		"description":   "A wooden chair",
		"prix":          "49.99",
		"quantityStock": "5",
	}
	for key, value := range want {
		if scalars[key] != value {
			t.Errorf("field %s = %q, want %q", key, scalars[key], value)
		}
	}

	if len(fileNames) != 2 || fileNames[0] != "front.jpg" || fileNames[1] != "side.png" {
		t.Errorf("file parts = %v, want [front.jpg side.png]", fileNames)
	}
	// File parts carry the sniffed type, not application/octet-stream
	if len(fileTypes) == 2 && (fileTypes[0] != "image/jpeg" || fileTypes[1] != "image/png") {
		t.Errorf("file part types = %v", fileTypes)
	}
}

func TestBuildPayload_EmptyStagingFallsBackToJSON(t *testing.T) {
	d := NewWithStaging(newFakeStaging())
	d.Title = "Chair"
	d.Description = "A wooden chair"
	d.Price = 49.99
	d.StockQuantity = 5

	payload, err := d.BuildPayload()
	if err != nil {
		t.Fatalf("BuildPayload() error = %v", err)
	}
	if payload.ContentType != "application/json" {
		t.Errorf("ContentType = %q, want application/json when nothing is staged", payload.ContentType)
	}
}
