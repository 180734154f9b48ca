package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/docuchat/internal/common"
	"github.com/dmitrijs2005/docuchat/internal/server/auth"
)

const sessionCookieName = "docuchat_session"

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// duplicateResponse is returned when the uploaded content was already
// indexed; FirstUploadedAt refers to the original submission.
type duplicateResponse struct {
	Message         string    `json:"message"`
	FileName        string    `json:"file_name"`
	Hash            string    `json:"hash"`
	Size            int64     `json:"size"`
	StoreName       string    `json:"store_name"`
	FirstUploadedAt time.Time `json:"first_uploaded_at"`
}

type indexedResponse struct {
	Message   string `json:"message"`
	StoreName string `json:"store_name"`
	FileName  string `json:"file_name"`
	Hash      string `json:"hash"`
	Size      int64  `json:"size"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	reply, err := s.chat.Answer(r.Context(), req.Message)
	if err != nil {
		if errors.Is(err, common.ErrEmptyMessage) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: common.ErrEmptyMessage.Error()})
			return
		}
		s.logger.Error(r.Context(), "chat request failed", "error", err.Error())
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{Reply: reply})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: common.ErrNoFile.Error()})
		return
	}
	defer file.Close()

	if header.Filename == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: common.ErrNoFile.Error()})
		return
	}

	result, err := s.upload.Process(r.Context(), header.Filename, file)
	if err != nil {
		s.logger.Error(r.Context(), "upload request failed", "file", header.Filename, "error", err.Error())
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	if result.Duplicate {
		writeJSON(w, http.StatusOK, duplicateResponse{
			Message:         "This file was already indexed into the document store; the new duplicate copy was removed.",
			FileName:        header.Filename,
			Hash:            result.Record.Hash,
			Size:            result.Record.Size,
			StoreName:       result.Record.StoreName,
			FirstUploadedAt: result.Record.UploadedAt,
		})
		return
	}

	writeJSON(w, http.StatusOK, indexedResponse{
		Message:   "Document uploaded, stored on the server and indexed into the document store.",
		StoreName: result.Record.StoreName,
		FileName:  result.Record.FileName,
		Hash:      result.Record.Hash,
		Size:      result.Record.Size,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")

	if !auth.CheckCredentials(username, password, s.adminUsername, s.adminPassword) {
		s.renderPage(w, "login.html", map[string]any{"Error": "Invalid username or password."})
		return
	}

	token, err := auth.NewSessionToken(s.sessionSecret, s.sessionValidity)
	if err != nil {
		s.logger.Error(r.Context(), "session token generation failed", "error", err.Error())
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.sessionValidity.Seconds()),
	})

	next := r.URL.Query().Get("next")
	if next == "" || next[0] != '/' {
		next = "/upload"
	}
	http.Redirect(w, r, next, http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:   sessionCookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
