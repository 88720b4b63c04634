package domain

// RoomToken 加入语音房间的凭证
type RoomToken struct {
	Token string
	// 信令服务器的 websocket 地址
	URL string
}
