package model

// CustomResponse is the structured error body returned to clients.
type CustomResponse struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

type PingResponse struct {
	Message string `json:"message"`
}

type RootResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type AuthLogoutResponse struct {
	Status string `json:"status"`
}
