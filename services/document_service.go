package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/anjiri1684/tutor_marketplace/configs"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

const documentFolder = "tutor_marketplace_documents"

// StagedDocument is one verification document that has been uploaded but
// not yet committed to a teacher profile. PublicID and ResourceType are kept
// so a failed submission can destroy the file again.
type StagedDocument struct {
	Field        string
	PublicID     string
	ResourceType string
	URL          string
}

func cloudinaryClient() (*cloudinary.Cloudinary, error) {
	if configs.C.CloudinaryURL == "" {
		return nil, fmt.Errorf("CLOUDINARY_URL is not configured")
	}
	return cloudinary.NewFromURL(configs.C.CloudinaryURL)
}

// UploadDocument pushes a locally saved multipart file to Cloudinary and
// returns the durable URL. The caller removes the local file in all paths.
func UploadDocument(localPath, field string) (*StagedDocument, error) {
	cld, err := cloudinaryClient()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	publicID := fmt.Sprintf("%s_%s", field, uuid.New().String())
	uploadResult, err := cld.Upload.Upload(ctx, localPath, uploader.UploadParams{
		PublicID:     publicID,
		Folder:       documentFolder,
		ResourceType: "auto",
	})
	if err != nil {
		return nil, err
	}

	return &StagedDocument{
		Field:        field,
		PublicID:     uploadResult.PublicID,
		ResourceType: uploadResult.ResourceType,
		URL:          uploadResult.SecureURL,
	}, nil
}

// DiscardDocuments is the compensating action for a failed submission:
// every document already uploaded for that submission is destroyed so no
// partial document set survives.
func DiscardDocuments(staged []*StagedDocument) {
	cld, err := cloudinaryClient()
	if err != nil {
		log.Printf("🔥 Cannot discard %d staged document(s): %v", len(staged), err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	for _, doc := range staged {
		_, err := cld.Upload.Destroy(ctx, uploader.DestroyParams{
			PublicID:     doc.PublicID,
			ResourceType: doc.ResourceType,
		})
		if err != nil {
			log.Printf("🔥 Failed to discard staged document %s: %v", doc.PublicID, err)
		}
	}
}

// publicIDFromURL recovers the public id and resource type from a stored
// delivery URL so a superseded document can be destroyed again. Raw uploads
// keep their file extension as part of the public id; other types drop it.
func publicIDFromURL(rawURL string) (publicID, resourceType string, ok bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", "", false
	}

	// /<cloud_name>/<resource_type>/upload/v<version>/<folder>/<file>
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 4 || parts[2] != "upload" {
		return "", "", false
	}
	resourceType = parts[1]

	rest := parts[3:]
	if len(rest[0]) > 1 && rest[0][0] == 'v' {
		if _, err := strconv.Atoi(rest[0][1:]); err == nil {
			rest = rest[1:]
		}
	}
	if len(rest) == 0 {
		return "", "", false
	}

	publicID = strings.Join(rest, "/")
	if resourceType != "raw" {
		if dot := strings.LastIndex(publicID, "."); dot > strings.LastIndex(publicID, "/") {
			publicID = publicID[:dot]
		}
	}
	return publicID, resourceType, true
}

// DiscardReplacedDocuments destroys documents whose profile slot was
// overwritten by a committed resubmission, so superseded files do not pile
// up in storage. Only their URLs survive on the profile, which is why the
// public id has to be recovered from the URL.
func DiscardReplacedDocuments(urls []string) {
	cld, err := cloudinaryClient()
	if err != nil {
		log.Printf("🔥 Cannot discard %d replaced document(s): %v", len(urls), err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	for _, raw := range urls {
		publicID, resourceType, ok := publicIDFromURL(raw)
		if !ok {
			log.Printf("⚠️ Cannot derive a public id from document URL %s", raw)
			continue
		}
		_, err := cld.Upload.Destroy(ctx, uploader.DestroyParams{
			PublicID:     publicID,
			ResourceType: resourceType,
		})
		if err != nil {
			log.Printf("🔥 Failed to discard replaced document %s: %v", publicID, err)
		}
	}
}
