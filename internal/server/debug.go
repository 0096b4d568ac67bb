package server

import (
	"errors"
	"io/fs"
	"net/http"

	"github.com/plomlompom/plomrogue2-experiments/internal/engine"
	"github.com/plomlompom/plomrogue2-experiments/internal/infrastructure/storage"
)

// DebugHandler отдает то, что можно читать вне игрового цикла:
// статический реестр команд и последний снимок на диске.
type DebugHandler struct {
	Service *engine.GameService
}

func NewDebugHandler(s *engine.GameService) *DebugHandler {
	return &DebugHandler{Service: s}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/commands", h.handleCommands)
	mux.HandleFunc("/debug/snapshot", h.handleSnapshot)
}

// /debug/commands - команды протокола и их сигнатуры
func (h *DebugHandler) handleCommands(w http.ResponseWriter, r *http.Request) {
	type CommandView struct {
		Name      string `json:"name"`
		Signature string `json:"signature"`
		DontSave  bool   `json:"dont_save"`
	}

	var views []CommandView
	for _, cmd := range h.Service.Commands() {
		views = append(views, CommandView{
			Name:      cmd.Name,
			Signature: cmd.Signature,
			DontSave:  cmd.DontSave,
		})
	}
	writeJSON(w, views)
}

// /debug/snapshot - строки последнего сохранения
func (h *DebugHandler) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	if h.Service.Config.GameFile == "" {
		http.Error(w, "No game file configured", http.StatusNotFound)
		return
	}

	lines, err := storage.NewFileSnapshotStore(h.Service.Config.GameFile).ReadSnapshot()
	if errors.Is(err, fs.ErrNotExist) {
		http.Error(w, "No snapshot yet", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, lines)
}
