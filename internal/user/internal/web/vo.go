package web

type SignoutResp struct {
	Message string `json:"message"`
}

type ClearSessionResp struct {
	Message        string   `json:"message"`
	ClearedCookies []string `json:"clearedCookies"`
}
