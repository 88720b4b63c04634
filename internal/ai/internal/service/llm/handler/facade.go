package handler

import (
	"context"
	"fmt"

	"github.com/ecodeclub/mockly/internal/ai/internal/domain"
)

// FacadeHandler 根据配置里的平台找到最终的出口。
// 两个平台是可以互换的，调用方只感知 Config.Platform
type FacadeHandler struct {
	platforms       map[string]Handler
	defaultPlatform string
}

func NewFacadeHandler(defaultPlatform string, platforms map[string]Handler) *FacadeHandler {
	return &FacadeHandler{
		platforms:       platforms,
		defaultPlatform: defaultPlatform,
	}
}

func (f *FacadeHandler) Handle(ctx context.Context, req domain.LLMRequest) (domain.LLMResponse, error) {
	platform := req.Config.Platform
	if platform == "" {
		platform = f.defaultPlatform
	}
	h, ok := f.platforms[platform]
	if !ok {
		return domain.LLMResponse{}, fmt.Errorf("未知的大模型平台 %s", platform)
	}
	return h.Handle(ctx, req)
}
