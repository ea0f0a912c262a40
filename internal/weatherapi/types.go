package weatherapi

// APIError описывает тело ошибки, которое погодный провайдер возвращает
// со статусом 200 (например, для неизвестного города).
type APIError struct {
	Code int    `json:"code"`
	Type string `json:"type"`
	Info string `json:"info"`
}

// errorEnvelope используется для обнаружения ошибки провайдера в успешном ответе.
type errorEnvelope struct {
	Error *APIError `json:"error"`
}
