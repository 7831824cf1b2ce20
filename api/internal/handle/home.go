package handle

import "net/http"

const apiVersion = "1.0.0"

type homeResp struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

type healthResp struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (h *Handle) Home(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, homeResp{
		Message: "Grading System API",
		Version: apiVersion,
		Endpoints: map[string]string{
			"POST /grade": "Grade student answer against model answer",
			"GET /health": "Health check endpoint",
		},
	})
}

func (h *Handle) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResp{Status: "healthy", Message: "API is running"})
}
