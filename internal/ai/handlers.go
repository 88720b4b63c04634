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

package ai

import (
	"time"

	ekitretry "github.com/ecodeclub/ekit/retry"
	"github.com/ecodeclub/mockly/internal/ai/internal/domain"
	"github.com/ecodeclub/mockly/internal/ai/internal/service/llm/handler"
	"github.com/ecodeclub/mockly/internal/ai/internal/service/llm/handler/log"
	"github.com/ecodeclub/mockly/internal/ai/internal/service/llm/handler/platform/cerebras"
	"github.com/ecodeclub/mockly/internal/ai/internal/service/llm/handler/platform/zhipu"
	"github.com/ecodeclub/mockly/internal/ai/internal/service/llm/handler/record"
	"github.com/ecodeclub/mockly/internal/ai/internal/service/llm/handler/retry"
	"github.com/gotomicro/ego/core/econf"
)

func InitRootHandler(common []handler.Builder, facade *handler.FacadeHandler) handler.Handler {
	// log -> retry -> record -> platform
	return handler.NewCompositionHandler(common, facade)
}

func InitCommonHandlers(log *log.HandlerBuilder,
	retry *retry.HandlerBuilder,
	record *record.HandlerBuilder) []handler.Builder {
	return []handler.Builder{log, retry, record}
}

func InitRetryHandlerBuilder() *retry.HandlerBuilder {
	type Config struct {
		InitInterval time.Duration `yaml:"initInterval"`
		MaxInterval  time.Duration `yaml:"maxInterval"`
		MaxRetries   int32         `yaml:"maxRetries"`
	}
	cfg := Config{
		InitInterval: time.Second,
		MaxInterval:  10 * time.Second,
		MaxRetries:   3,
	}
	// 配置缺省就用默认值
	_ = econf.UnmarshalKey("ai.retry", &cfg)
	return retry.NewHandlerBuilder(func() ekitretry.Strategy {
		strategy, err := ekitretry.NewExponentialBackoffRetryStrategy(cfg.InitInterval, cfg.MaxInterval, cfg.MaxRetries)
		if err != nil {
			panic(err)
		}
		return strategy
	}, retry.RateLimited)
}

func InitFacadeHandler(cerebras *cerebras.Handler, zhipu *zhipu.Handler) *handler.FacadeHandler {
	defaultPlatform := econf.GetString("ai.defaultPlatform")
	if defaultPlatform == "" {
		defaultPlatform = cerebras.Name()
	}
	return handler.NewFacadeHandler(defaultPlatform, map[string]handler.Handler{
		cerebras.Name(): cerebras,
		zhipu.Name():    zhipu,
	})
}

func InitCerebras() *cerebras.Handler {
	type Config struct {
		APIKey string `yaml:"apikey"`
	}
	var cfg Config
	err := econf.UnmarshalKey("ai.cerebras", &cfg)
	if err != nil {
		panic(err)
	}
	return cerebras.NewHandler(cfg.APIKey)
}

func InitZhipu() *zhipu.Handler {
	type Config struct {
		APIKey string `yaml:"apikey"`
	}
	var cfg Config
	err := econf.UnmarshalKey("ai.zhipu", &cfg)
	if err != nil {
		panic(err)
	}
	h, err := zhipu.NewHandler(cfg.APIKey)
	if err != nil {
		panic(err)
	}
	return h
}

func InitChatConfig() domain.BizConfig {
	var cfg domain.BizConfig
	err := econf.UnmarshalKey("ai.chat", &cfg)
	if err != nil {
		panic(err)
	}
	return cfg
}
