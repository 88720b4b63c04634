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

package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/ecodeclub/mockly/internal/speech/internal/domain"
	"github.com/gotomicro/ego/core/elog"
)

const (
	cartesiaVersion = "2025-04-16"

	defaultVoiceId  = "bf0a246a-8642-498a-9950-80c35e9276b5"
	defaultLanguage = "en"

	ttsModel = "sonic-english"
	sttModel = "ink-whisper"
)

// ErrNotConfigured 没有配置 API Key。
// 这类问题要第一时间暴露出来，不能悄悄降级
var ErrNotConfigured = errors.New("语音服务未配置 API Key")

// VendorError 供应商返回的错误，状态码原样带回给调用方
type VendorError struct {
	StatusCode int
	Body       string
}

func (e *VendorError) Error() string {
	return fmt.Sprintf("语音服务调用失败: %d %s", e.StatusCode, e.Body)
}

// HTTPClient 便于测试时 mock
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

//go:generate mockgen -source=./cartesia.go -destination=../../mocks/speech.mock.go -package=speechmocks -typed=true Service
type Service interface {
	// Synthesize 文本转语音。配额耗尽（402）不算失败，
	// 返回 Engine 为 browser 的空结果，客户端降级到本地引擎
	Synthesize(ctx context.Context, req domain.SynthesisRequest) (domain.Synthesis, error)
	// Transcribe 语音转文本
	Transcribe(ctx context.Context, audio io.Reader, filename string) (domain.Transcription, error)
}

type cartesiaService struct {
	baseURL string
	apiKey  string
	client  HTTPClient
	logger  *elog.Component
}

func NewCartesiaService(baseURL, apiKey string, client HTTPClient) Service {
	return &cartesiaService{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  client,
		logger:  elog.DefaultLogger.With(elog.FieldComponent("speech.cartesia")),
	}
}

func (s *cartesiaService) Synthesize(ctx context.Context, req domain.SynthesisRequest) (domain.Synthesis, error) {
	if s.apiKey == "" {
		return domain.Synthesis{}, ErrNotConfigured
	}
	if req.VoiceId == "" {
		req.VoiceId = defaultVoiceId
	}
	if req.Language == "" {
		req.Language = defaultLanguage
	}
	body, err := json.Marshal(ttsRequest{
		ModelId:    ttsModel,
		Transcript: req.Text,
		Voice: ttsVoice{
			Mode: "id",
			Id:   req.VoiceId,
		},
		OutputFormat: ttsOutputFormat{
			Container:  "wav",
			Encoding:   "pcm_s16le",
			SampleRate: 44100,
		},
		Language: req.Language,
	})
	if err != nil {
		return domain.Synthesis{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.baseURL+"/tts/bytes", bytes.NewReader(body))
	if err != nil {
		return domain.Synthesis{}, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+s.apiKey)
	httpReq.Header.Set("Cartesia-Version", cartesiaVersion)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return domain.Synthesis{}, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusPaymentRequired {
		// 配额耗尽，降级而不是报错
		s.logger.Warn("语音合成配额耗尽，降级到本地引擎")
		return domain.Synthesis{Engine: domain.EngineBrowser}, nil
	}
	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return domain.Synthesis{}, &VendorError{
			StatusCode: resp.StatusCode,
			Body:       string(data),
		}
	}
	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Synthesis{}, err
	}
	return domain.Synthesis{
		Audio:  audio,
		Engine: domain.EngineCartesia,
	}, nil
}

func (s *cartesiaService) Transcribe(ctx context.Context, audio io.Reader, filename string) (domain.Transcription, error) {
	if s.apiKey == "" {
		return domain.Transcription{}, ErrNotConfigured
	}
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return domain.Transcription{}, err
	}
	if _, err = io.Copy(part, audio); err != nil {
		return domain.Transcription{}, err
	}
	_ = writer.WriteField("model", sttModel)
	_ = writer.WriteField("language", defaultLanguage)
	_ = writer.WriteField("timestamp_granularities[]", "word")
	if err = writer.Close(); err != nil {
		return domain.Transcription{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/stt", &buf)
	if err != nil {
		return domain.Transcription{}, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+s.apiKey)
	httpReq.Header.Set("Cartesia-Version", cartesiaVersion)
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return domain.Transcription{}, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return domain.Transcription{}, &VendorError{
			StatusCode: resp.StatusCode,
			Body:       string(data),
		}
	}
	var res sttResponse
	if err = json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return domain.Transcription{}, err
	}
	return domain.Transcription{
		Text:     res.Text,
		Language: res.Language,
		Duration: res.Duration,
		Words:    res.Words,
	}, nil
}

type ttsRequest struct {
	ModelId      string          `json:"model_id"`
	Transcript   string          `json:"transcript"`
	Voice        ttsVoice        `json:"voice"`
	OutputFormat ttsOutputFormat `json:"output_format"`
	Language     string          `json:"language"`
}

type ttsVoice struct {
	Mode string `json:"mode"`
	Id   string `json:"id"`
}

type ttsOutputFormat struct {
	Container  string `json:"container"`
	Encoding   string `json:"encoding"`
	SampleRate int    `json:"sample_rate"`
}

type sttResponse struct {
	Text     string        `json:"text"`
	Language string        `json:"language"`
	Duration float64       `json:"duration"`
	Words    []domain.Word `json:"words"`
}
