package web

type TokenReq struct {
	RoomName string `json:"roomName"`
}

type TokenResp struct {
	Token string `json:"token"`
	URL   string `json:"url"`
}
