package user

import (
	"github.com/ecodeclub/mockly/internal/user/internal/web"
)

type Handler = web.Handler
