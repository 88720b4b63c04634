package web

type TTSReq struct {
	Text     string `json:"text"`
	VoiceId  string `json:"voiceId,omitempty"`
	Language string `json:"language,omitempty"`
}

type TTSResp struct {
	// Audio base64 编码的 wav 数据，Engine 为 browser 时为空
	Audio  []byte `json:"audio,omitempty"`
	Engine string `json:"engine"`
}

type STTResp struct {
	Text     string   `json:"text"`
	Language string   `json:"language"`
	Duration float64  `json:"duration"`
	Words    []WordVO `json:"words"`
}

type WordVO struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}
