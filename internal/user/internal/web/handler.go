// Copyright 2023 ecodeclub
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package web

import (
	"strings"

	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/ginx/session"
	"github.com/gin-gonic/gin"
)

const sessionCookie = "ssid"

var _ ginx.Handler = (*Handler)(nil)

type Handler struct {
	// 清 cookie 时带上 domain，和下发时保持一致
	cookieDomain string
}

func NewHandler(cookieDomain string) *Handler {
	return &Handler{cookieDomain: cookieDomain}
}

func (h *Handler) PublicRoutes(server *gin.Engine) {
	// 登录态已经坏掉的用户也要能清理，所以不走登录校验
	server.Any("/auth/clear-session", ginx.W(h.ClearSession))
}

func (h *Handler) PrivateRoutes(server *gin.Engine) {
	server.POST("/auth/signout", ginx.S(h.Signout))
}

func (h *Handler) Signout(ctx *ginx.Context, _ session.Session) (ginx.Result, error) {
	h.clearCookie(ctx, sessionCookie)
	return ginx.Result{
		Data: SignoutResp{Message: "Signed out successfully"},
	}, nil
}

// ClearSession 把所有认证相关的 cookie 全清掉，幂等
func (h *Handler) ClearSession(ctx *ginx.Context) (ginx.Result, error) {
	cleared := []string{sessionCookie}
	h.clearCookie(ctx, sessionCookie)
	for _, ck := range ctx.Request.Cookies() {
		if ck.Name == sessionCookie {
			continue
		}
		name := strings.ToLower(ck.Name)
		if strings.Contains(name, "auth") ||
			strings.Contains(name, "session") ||
			strings.Contains(name, "token") {
			h.clearCookie(ctx, ck.Name)
			cleared = append(cleared, ck.Name)
		}
	}
	return ginx.Result{
		Data: ClearSessionResp{
			Message:        "All sessions cleared successfully",
			ClearedCookies: cleared,
		},
	}, nil
}

func (h *Handler) clearCookie(ctx *ginx.Context, name string) {
	ctx.SetCookie(name, "", -1, "/", h.cookieDomain, true, true)
}
