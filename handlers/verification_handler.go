package handlers

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/anjiri1684/tutor_marketplace/database"
	"github.com/anjiri1684/tutor_marketplace/models"
	"github.com/anjiri1684/tutor_marketplace/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Multipart field names for the verification documents, one file each.
// Aadhaar is the identity document and must be present before a submission
// is accepted.
var documentFields = []string{"Aadhaar", "Secondary", "Higher", "UG", "PG"}

type VerificationForm struct {
	Phone      string `form:"phone" validate:"required,min=7"`
	Address    string `form:"address" validate:"required"`
	Experience string `form:"experience"`

	SecondarySchool string `form:"secondary_school"`
	SecondaryMarks  string `form:"secondary_marks"`
	HigherSchool    string `form:"higher_school"`
	HigherMarks     string `form:"higher_marks"`
	UGCollege       string `form:"ug_college"`
	UGMarks         string `form:"ug_marks"`
	PGCollege       string `form:"pg_college"`
	PGMarks         string `form:"pg_marks"`
}

// SubmitVerification moves a teacher's profile to pending. Documents are
// staged against object storage first; the profile row is only written once
// every upload has succeeded, and a failed submission destroys whatever it
// had already uploaded.
func SubmitVerification(c *fiber.Ctx) error {
	teacherID := authUserID(c)

	var profile models.TeacherProfile
	if err := database.DB.First(&profile, "user_id = ?", teacherID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Teacher profile not found"})
	}

	if !models.CanSubmitVerification(profile.Status) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Verification is already " + profile.Status + " and cannot be resubmitted",
		})
	}

	var form VerificationForm
	if err := c.BodyParser(&form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse form"})
	}
	if err := validate.Struct(form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	// The identity document must be on file before anything is mutated. A
	// resubmission may rely on the Aadhaar kept from the rejected attempt.
	if _, err := c.FormFile("Aadhaar"); err != nil && profile.AadhaarURL == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Aadhaar document is required"})
	}

	var staged []*services.StagedDocument
	for _, field := range documentFields {
		fileHeader, err := c.FormFile(field)
		if err != nil {
			continue
		}

		tempPath := filepath.Join(os.TempDir(), fmt.Sprintf("%s_%s_%s", teacherID, field, uuid.New().String()))
		if err := c.SaveFile(fileHeader, tempPath); err != nil {
			services.DiscardDocuments(staged)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to store uploaded file"})
		}

		doc, uploadErr := services.UploadDocument(tempPath, field)
		os.Remove(tempPath)
		if uploadErr != nil {
			services.DiscardDocuments(staged)
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Document upload failed"})
		}
		staged = append(staged, doc)
	}

	var replaced []string
	supersede := func(slot **string, doc *services.StagedDocument) {
		if *slot != nil {
			replaced = append(replaced, **slot)
		}
		*slot = &doc.URL
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		applyVerificationForm(&profile, form)
		for _, doc := range staged {
			switch doc.Field {
			case "Aadhaar":
				supersede(&profile.AadhaarURL, doc)
			case "Secondary":
				supersede(&profile.SecondaryURL, doc)
			case "Higher":
				supersede(&profile.HigherURL, doc)
			case "UG":
				supersede(&profile.UGURL, doc)
			case "PG":
				supersede(&profile.PGURL, doc)
			}
		}
		profile.Status = models.VerificationPending
		if err := tx.Save(&profile).Error; err != nil {
			return err
		}

		event := models.VerificationEvent{
			TeacherID: teacherID,
			Action:    models.VerificationActionSubmitted,
		}
		return tx.Create(&event).Error
	})
	if err != nil {
		services.DiscardDocuments(staged)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record verification submission"})
	}

	// Documents superseded by this submission are destroyed only once the
	// new set is durable.
	if len(replaced) > 0 {
		go services.DiscardReplacedDocuments(replaced)
	}

	return c.JSON(profile)
}

func applyVerificationForm(profile *models.TeacherProfile, form VerificationForm) {
	setIfPresent := func(dst **string, v string) {
		if v != "" {
			*dst = &v
		}
	}
	setIfPresent(&profile.Phone, form.Phone)
	setIfPresent(&profile.Address, form.Address)
	setIfPresent(&profile.Experience, form.Experience)
	setIfPresent(&profile.SecondarySchool, form.SecondarySchool)
	setIfPresent(&profile.SecondaryMarks, form.SecondaryMarks)
	setIfPresent(&profile.HigherSchool, form.HigherSchool)
	setIfPresent(&profile.HigherMarks, form.HigherMarks)
	setIfPresent(&profile.UGCollege, form.UGCollege)
	setIfPresent(&profile.UGMarks, form.UGMarks)
	setIfPresent(&profile.PGCollege, form.PGCollege)
	setIfPresent(&profile.PGMarks, form.PGMarks)
}

func GetMyVerification(c *fiber.Ctx) error {
	teacherID := authUserID(c)

	var profile models.TeacherProfile
	if err := database.DB.Preload("User").First(&profile, "user_id = ?", teacherID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Teacher profile not found"})
	}

	return c.JSON(profile)
}
