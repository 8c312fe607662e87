package handler

import (
	"net/http"

	"github.com/vfg2006/pinterest-insights-api/pkg/apiErrors"
	"github.com/vfg2006/pinterest-insights-api/pkg/log"
)

// SnapshotSyncer é a parte do agendador exposta às rotas de cron
type SnapshotSyncer interface {
	TriggerManualSync() (string, bool)
	GetStatus() map[string]any
}

// RunSnapshotSync dispara manualmente a sincronização de snapshots
func RunSnapshotSync(syncer SnapshotSyncer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if syncer == nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de sincronização não disponível", nil)
			return
		}

		runID, started := syncer.TriggerManualSync()
		if !started {
			writeJSON(w, r, http.StatusConflict, map[string]any{
				"message": "Sincronização já em andamento",
			})
			return
		}

		log.ForContext(r.Context()).WithField("run_id", runID).Info("scheduler: manual snapshot sync triggered")

		writeJSON(w, r, http.StatusAccepted, map[string]any{
			"message": "Sincronização iniciada com sucesso",
			"run_id":  runID,
		})
	})
}

func GetCronStatus(syncer SnapshotSyncer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if syncer == nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de sincronização não disponível", nil)
			return
		}

		writeOK(w, r, map[string]any{
			"snapshot_sync": syncer.GetStatus(),
		})
	})
}
