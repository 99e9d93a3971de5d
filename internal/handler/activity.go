package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/hogyzen12/carrot-go/internal/storage"
	"github.com/hogyzen12/carrot-go/internal/utils"
	"github.com/mr-tron/base58"
)

type activityHandler struct {
}

func NewActivityHandler() *activityHandler {
	return &activityHandler{}
}

const defaultActivityLimit = 50

func (h *activityHandler) List(w http.ResponseWriter, r *http.Request) {
	if storage.Activity == nil {
		http.Error(w, "activity storage not configured", http.StatusServiceUnavailable)
		return
	}

	limit := defaultActivityLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	activities, err := storage.Activity.List(limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.Encode(w, r, http.StatusOK, activities)
}

func (h *activityHandler) GetBySignature(w http.ResponseWriter, r *http.Request) {
	signature := chi.URLParam(r, "signature")

	raw, err := base58.Decode(signature)
	if err != nil || len(raw) != 64 {
		http.Error(w, "invalid transaction signature", http.StatusBadRequest)
		return
	}

	// Recent submissions live in Redis; older ones only in MySQL.
	if storage.Submissions != nil {
		if activity, err := storage.Submissions.Get(signature); err == nil {
			utils.Encode(w, r, http.StatusOK, activity)
			return
		}
	}

	if storage.Activity == nil {
		http.Error(w, "activity storage not configured", http.StatusServiceUnavailable)
		return
	}

	activity, err := storage.Activity.GetBySignature(signature)
	if err != nil {
		if errors.Is(err, storage.ErrActivityNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.Encode(w, r, http.StatusOK, activity)
}
