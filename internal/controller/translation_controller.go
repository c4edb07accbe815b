package controller

import (
	"errors"
	"io"

	"meditranslate-be/internal/constant"
	"meditranslate-be/internal/dto"
	"meditranslate-be/internal/pkg/logger"
	"meditranslate-be/internal/service"
	"meditranslate-be/pkg/translator"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// TranslationController serves the AI endpoints. These routes answer with
// plain JSON objects rather than the v1 envelope, so handlers write their
// error bodies directly instead of returning to the error middleware.
type TranslationController struct {
	gateway        translator.TranslationGateway
	messageService service.IMessageService
	summaryService service.ISummaryService
	logger         logger.ILogger
}

func NewTranslationController(
	gateway translator.TranslationGateway,
	messageService service.IMessageService,
	summaryService service.ISummaryService,
	logger logger.ILogger,
) *TranslationController {
	return &TranslationController{
		gateway:        gateway,
		messageService: messageService,
		summaryService: summaryService,
		logger:         logger,
	}
}

func (ctrl *TranslationController) RegisterRoutes(api fiber.Router) {
	api.Post("/translate", ctrl.Translate)
	api.Post("/process-audio", ctrl.ProcessAudio)
	api.Post("/summarize", ctrl.Summarize)
}

// Translate handles POST /api/translate. Stateless: nothing is persisted.
func (ctrl *TranslationController) Translate(c *fiber.Ctx) error {
	var req dto.TranslateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Missing text or language"})
	}

	if req.Text == "" || req.TargetLang == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Missing text or language"})
	}

	translation, err := ctrl.gateway.Translate(c.UserContext(), req.Text, req.TargetLang)
	if err != nil {
		ctrl.logger.Error("Translation", "Translate call failed", map[string]interface{}{
			"target_lang": req.TargetLang,
			"error":       err.Error(),
		})
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Failed to translate"})
	}

	return c.JSON(dto.TranslateResponse{Translation: translation})
}

// ProcessAudio handles POST /api/process-audio (multipart). Without a
// conversationId the upload is transcribed and translated only; with one, the
// blob is stored and the result persisted as a settled message.
func (ctrl *TranslationController) ProcessAudio(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "No file uploaded"})
	}

	targetLang := c.FormValue("targetLang")
	if targetLang == "" {
		targetLang = constant.DefaultTargetLang
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Internal Server Error"})
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Internal Server Error"})
	}

	mimeType := fileHeader.Header.Get("Content-Type")

	// Stateless mode: no conversation means no blob storage and no database
	// write, only the structured transcription.
	rawConversationId := c.FormValue("conversationId")
	if rawConversationId == "" {
		result, err := ctrl.gateway.ProcessAudio(c.UserContext(), audio, mimeType, targetLang)
		if err != nil {
			ctrl.logger.Error("Translation", "Audio processing failed", map[string]interface{}{
				"error": err.Error(),
			})
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Failed to process with Gemini"})
		}
		return c.JSON(dto.ProcessAudioResponse{
			Text:        result.Text,
			Translation: result.Translation,
		})
	}

	conversationId, err := uuid.Parse(rawConversationId)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Missing conversationId"})
	}

	role := c.FormValue("role")
	if role != constant.RoleDoctor && role != constant.RolePatient {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid role"})
	}

	result, err := ctrl.messageService.SendAudio(c.UserContext(), &dto.SendAudioRequest{
		ConversationId: conversationId,
		Role:           role,
		TargetLang:     targetLang,
		MimeType:       mimeType,
		Audio:          audio,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Failed to process with Gemini"})
	}

	return c.JSON(dto.ProcessAudioResponse{
		Text:        result.Text,
		Translation: result.Translation,
		AudioUrl:    &result.AudioUrl,
	})
}

// Summarize handles POST /api/summarize.
func (ctrl *TranslationController) Summarize(c *fiber.Ctx) error {
	var req dto.SummarizeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Missing conversationId"})
	}

	if req.ConversationId == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Missing conversationId"})
	}

	conversationId, err := uuid.Parse(req.ConversationId)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Missing conversationId"})
	}

	summary, err := ctrl.summaryService.Summarize(c.UserContext(), conversationId)
	if err != nil {
		if errors.Is(err, service.ErrEmptyConversation) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		ctrl.logger.Error("Translation", "Summarize failed", map[string]interface{}{
			"conversation_id": conversationId,
			"error":           err.Error(),
		})
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Internal Server Error"})
	}

	return c.JSON(dto.SummarizeResponse{Summary: summary})
}
