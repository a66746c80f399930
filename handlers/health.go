package handlers

import (
	"net/http"

	"todo-api/utils"
)

// Health godoc
// @Summary      Liveness probe
// @Tags         ops
// @Produce      plain
// @Success      200  {string}  string  "Healthy"
// @Router       /health [get]
func Health(w http.ResponseWriter, r *http.Request) {
	utils.WriteText(w, http.StatusOK, "Healthy")
}
