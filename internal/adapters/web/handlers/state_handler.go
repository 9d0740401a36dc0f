package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/lcalzada-xor/cyberdash/internal/core/services/screens"
	"github.com/lcalzada-xor/cyberdash/internal/core/store"
)

// StateHandler serves snapshots of the store.
type StateHandler struct {
	store    *store.Store
	registry *screens.Registry
	now      func() time.Time
}

func NewStateHandler(st *store.Store, registry *screens.Registry) *StateHandler {
	return &StateHandler{store: st, registry: registry, now: time.Now}
}

// ScreenPath maps a route name to a screen path: "dashboard" is "/",
// anything else gets a leading slash.
func ScreenPath(name string) string {
	if name == "" || name == "dashboard" {
		return "/"
	}
	return "/" + name
}

// HandleState returns the whole tree.
func (h *StateHandler) HandleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.State())
}

// HandleSummary returns the dashboard counters.
func (h *StateHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.State().Summary(h.now()))
}

// HandleScreens lists the mount points.
func (h *StateHandler) HandleScreens(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"screens": h.registry.Screens()})
}

// HandleScreen renders one screen's view of the current snapshot.
func (h *StateHandler) HandleScreen(w http.ResponseWriter, r *http.Request) {
	screen, err := h.registry.Lookup(ScreenPath(mux.Vars(r)["screen"]))
	if errors.Is(err, screens.ErrUnknownScreen) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, screen.Render(h.store.State(), h.now()))
}
