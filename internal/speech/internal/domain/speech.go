package domain

// 合成引擎标识，客户端据此决定是播放返回的音频还是走本地合成
const (
	EngineCartesia = "cartesia"
	EngineBrowser  = "browser"
)

type SynthesisRequest struct {
	Text     string
	VoiceId  string
	Language string
}

// Synthesis 合成结果。Engine 为 browser 时 Audio 为空，
// 表示远端暂时不可用，客户端应当降级到本地引擎
type Synthesis struct {
	Audio  []byte
	Engine string
}

type Word struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

type Transcription struct {
	Text     string
	Language string
	// 秒
	Duration float64
	Words    []Word
}
