// internal/generation/handler.go
package generation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gorilla/mux"

	"docquiz/internal/auth"
	"docquiz/internal/models"
)

const TokenHeader = "X-Document-Token"

type Handler struct {
	service   *Service
	tokens    *auth.Service
	maxUpload int64
}

func NewHandler(service *Service, tokens *auth.Service, maxUpload int64) *Handler {
	return &Handler{service: service, tokens: tokens, maxUpload: maxUpload}
}

func (h *Handler) Routes(router *mux.Router) {
	router.HandleFunc("/healthz", h.Health).Methods("GET")
	router.HandleFunc("/upload-pdf", h.UploadPDF).Methods("POST", "OPTIONS")
	router.Handle("/generate-quiz",
		auth.DocumentMiddleware(h.tokens, respondWithError)(http.HandlerFunc(h.GenerateQuiz)),
	).Methods("POST", "OPTIONS")
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) UploadPDF(w http.ResponseWriter, r *http.Request) {
	// leave room for the multipart envelope around the file
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload+1<<20)

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondWithError(w, http.StatusRequestEntityTooLarge, h.tooLargeMessage())
			return
		}
		respondWithError(w, http.StatusBadRequest, "No file uploaded. Send the PDF in the \"file\" field.")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxUpload+1))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Could not read the uploaded file.")
		return
	}
	if int64(len(data)) > h.maxUpload {
		respondWithError(w, http.StatusRequestEntityTooLarge, h.tooLargeMessage())
		return
	}
	if !mimetype.Detect(data).Is("application/pdf") {
		respondWithError(w, http.StatusUnsupportedMediaType, "Invalid file type. Please upload a PDF file.")
		return
	}

	log.Printf("Summarizing %s (%d bytes)", header.Filename, len(data))
	doc, err := h.service.Summarize(r.Context(), header.Filename, data)
	if err != nil {
		log.Printf("Error summarizing %s: %v", header.Filename, err)
		if errors.Is(err, ErrNoText) {
			respondWithError(w, http.StatusUnprocessableEntity, "No readable text was found in the PDF.")
			return
		}
		respondWithError(w, http.StatusBadGateway, "Failed to summarize the document. Please try again.")
		return
	}

	token, err := h.tokens.Issue(doc.ID)
	if err != nil {
		log.Printf("Error issuing token for %s: %v", doc.ID, err)
	} else {
		w.Header().Set(TokenHeader, token)
	}
	w.Header().Set("X-Document-Id", doc.ID)
	writeJSON(w, http.StatusOK, models.SummaryResponse{Summary: doc.Summary})
}

func (h *Handler) GenerateQuiz(w http.ResponseWriter, r *http.Request) {
	documentID, _ := auth.DocumentIDFrom(r.Context())

	questions, err := h.service.GenerateQuiz(r.Context(), documentID)
	if err != nil {
		log.Printf("Error generating quiz: %v", err)
		switch {
		case errors.Is(err, ErrNoDocument):
			respondWithError(w, http.StatusBadRequest, "No summary available. Please upload a PDF first.")
		case errors.Is(err, ErrNoQuestions):
			respondWithError(w, http.StatusBadGateway, "The generated quiz was not usable. Please try again.")
		default:
			respondWithError(w, http.StatusBadGateway, "Failed to generate quiz")
		}
		return
	}

	writeJSON(w, http.StatusOK, models.QuizResponse{Questions: questions})
}

func (h *Handler) tooLargeMessage() string {
	return fmt.Sprintf("File too large. The limit is %d MB.", h.maxUpload>>20)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func respondWithError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, models.ErrorResponse{Message: msg})
}
