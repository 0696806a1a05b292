package services

import "testing"

func TestPublicIDFromURL(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		wantID   string
		wantType string
		wantOK   bool
	}{
		{
			name:     "image upload drops the extension",
			url:      "https://res.cloudinary.com/demo/image/upload/v1699999999/tutor_marketplace_documents/Aadhaar_8ad776e2.jpg",
			wantID:   "tutor_marketplace_documents/Aadhaar_8ad776e2",
			wantType: "image",
			wantOK:   true,
		},
		{
			name:     "raw upload keeps the extension",
			url:      "https://res.cloudinary.com/demo/raw/upload/v1699999999/tutor_marketplace_documents/Secondary_1f00.pdf",
			wantID:   "tutor_marketplace_documents/Secondary_1f00.pdf",
			wantType: "raw",
			wantOK:   true,
		},
		{
			name:     "url without a version segment",
			url:      "https://res.cloudinary.com/demo/image/upload/tutor_marketplace_documents/Higher_77.png",
			wantID:   "tutor_marketplace_documents/Higher_77",
			wantType: "image",
			wantOK:   true,
		},
		{
			name:   "not a delivery url",
			url:    "https://example.com/some/file.pdf",
			wantOK: false,
		},
		{
			name:   "unparsable",
			url:    "://",
			wantOK: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotID, gotType, gotOK := publicIDFromURL(tt.url)
			if gotOK != tt.wantOK {
				t.Fatalf("publicIDFromURL(%q) ok = %v, want %v", tt.url, gotOK, tt.wantOK)
			}
			if !tt.wantOK {
				return
			}
			if gotID != tt.wantID || gotType != tt.wantType {
				t.Errorf("publicIDFromURL(%q) = %q, %q; want %q, %q", tt.url, gotID, gotType, tt.wantID, tt.wantType)
			}
		})
	}
}
