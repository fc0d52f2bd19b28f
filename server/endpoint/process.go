package endpoint

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/medvoice/entity"
	apperrors "github.com/skillsenselab/medvoice/errors"
	"github.com/skillsenselab/medvoice/logger"
	"github.com/skillsenselab/medvoice/pipeline"
)

// processSuccess is the envelope returned when the whole pipeline succeeds.
type processSuccess struct {
	Status          string                 `json:"status"`
	Transcription   pipeline.Transcription `json:"transcription"`
	MedicalEntities *entity.CategorizedSet `json:"medical_entities"`
	AudioFile       string                 `json:"audio_file"`
}

// ProcessAudio returns the handler for the main audio-processing endpoint.
// The uploaded file is written to a temporary .wav which is removed once the
// request finishes, success or not.
func ProcessAudio(proc *pipeline.Processor, log *logger.Logger) gin.HandlerFunc {
	log = log.WithComponent("process_audio")
	return func(c *gin.Context) {
		header, err := c.FormFile("file")
		if err != nil || header.Filename == "" {
			respondError(c, apperrors.MissingField("file"))
			return
		}

		tmp, err := os.CreateTemp("", "medvoice-*.wav")
		if err != nil {
			respondError(c, apperrors.Internal(err))
			return
		}
		tmpPath := tmp.Name()
		tmp.Close()
		defer os.Remove(tmpPath)

		if err := c.SaveUploadedFile(header, tmpPath); err != nil {
			respondError(c, apperrors.Internal(err))
			return
		}

		result, err := proc.Process(c.Request.Context(), tmpPath)
		if err != nil {
			log.Error("audio processing failed", logger.ErrorFields("process_audio", err))
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, processSuccess{
			Status:          "success",
			Transcription:   result.Transcription,
			MedicalEntities: result.MedicalEntities,
			AudioFile:       filepath.Base(header.Filename),
		})
	}
}

// respondError writes the error envelope, deriving status and detail from the
// AppError when available.
func respondError(c *gin.Context, err error) {
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		appErr = apperrors.Internal(err)
	}

	technical := map[string]any{}
	for k, v := range appErr.Details {
		technical[k] = v
	}
	if appErr.Cause != nil {
		technical["cause"] = appErr.Cause.Error()
	}

	c.JSON(appErr.HTTPStatus, gin.H{
		"status":            "error",
		"message":           appErr.Message,
		"error_details":     string(appErr.Code),
		"technical_details": technical,
	})
}
