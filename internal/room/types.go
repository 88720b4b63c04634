package room

import (
	"github.com/ecodeclub/mockly/internal/room/internal/domain"
	"github.com/ecodeclub/mockly/internal/room/internal/service"
	"github.com/ecodeclub/mockly/internal/room/internal/web"
)

type TokenService = service.TokenService

type Handler = web.Handler

type RoomToken = domain.RoomToken
