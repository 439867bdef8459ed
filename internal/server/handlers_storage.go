package server

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"luxe/internal/api"
)

func (s *Server) handleStorageUpload(w http.ResponseWriter, r *http.Request) {
	s.withLimiter(w, r, s.uploadLimiter, "upload", func() {
		if s.uploadMaxBytes > 0 {
			r.Body = http.MaxBytesReader(w, r.Body, s.uploadMaxBytes)
		}
		if err := r.ParseMultipartForm(s.multipartMaxMemory); err != nil {
			s.writeErrorReq(w, r, http.StatusBadRequest, badRequestCode(fmt.Errorf("invalid multipart form: %w", err), ErrCodeInvalidUpload))
			return
		}
		defer func() {
			if r.MultipartForm != nil {
				_ = r.MultipartForm.RemoveAll()
			}
		}()

		file, header, err := r.FormFile("file")
		if err != nil {
			s.writeErrorReq(w, r, http.StatusBadRequest, badRequestCode(fmt.Errorf("file field is required"), ErrCodeInvalidUpload))
			return
		}
		defer file.Close()

		contentType := r.FormValue("content_type")
		if contentType == "" && header != nil {
			contentType = header.Header.Get("Content-Type")
		}

		record, url, err := s.storage.Upload(r.Context(), file, contentType, time.Now().UTC())
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}

		s.writeJSON(w, http.StatusCreated, api.StorageUploadResponse{
			ID:          record.ID,
			URL:         url,
			SHA256:      record.SHA256,
			SizeBytes:   record.SizeBytes,
			ContentType: record.ContentType,
		})
	})
}

func (s *Server) handleStorageAudit(w http.ResponseWriter, r *http.Request) {
	windowMS, err := queryInt64Default(r, "window_ms", 0)
	if err != nil {
		s.writeErrorReq(w, r, http.StatusBadRequest, err)
		return
	}

	s.withLimiter(w, r, s.auditLimiter, "audit", func() {
		result, err := s.audit.Run(r.Context(), windowMS)
		if err != nil {
			s.writeStoreError(w, r, err)
			return
		}

		s.writeJSON(w, http.StatusOK, api.StorageAuditResponse{
			Total:           len(result.Active) + len(result.Orphaned),
			Active:          len(result.Active),
			Orphaned:        len(result.Orphaned),
			ActiveFiles:     toStorageFileResponses(result.Active),
			OrphanedFiles:   toStorageFileResponses(result.Orphaned),
			GroupedOrphaned: toStorageFileGroups(result.Groups),
			WindowMS:        result.WindowMS,
		})
	})
}

func (s *Server) handleServeFile(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathIDOrBadRequest(w, r, "fl")
	if !ok {
		return
	}

	file, rc, err := s.storage.Open(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", file.ContentType)
	if file.SizeBytes > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(file.SizeBytes, 10))
	}
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	if _, err := io.Copy(w, rc); err != nil {
		s.log().Debug("serve file interrupted", "id", id, "error", err)
	}
}
