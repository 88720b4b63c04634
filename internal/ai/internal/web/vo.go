package web

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Messages []Message `json:"messages"`
}

type ChatResponse struct {
	Answer string `json:"answer"`
	Tokens int64  `json:"tokens"`
}
