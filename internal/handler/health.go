package handler

import "net/http"

// GetHealth reports process liveness. It deliberately checks nothing
// downstream; orchestrators use it to decide whether to restart the process,
// not whether the database is up.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
