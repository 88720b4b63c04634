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
	"errors"
	"fmt"
	"time"

	"github.com/ecodeclub/mockly/internal/room/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// ErrNotConfigured 没有配置 API Key 或者 Secret
var ErrNotConfigured = errors.New("房间服务未配置密钥")

const tokenTTL = time.Hour

// VideoGrant 信令服务器识别的房间权限
type VideoGrant struct {
	RoomJoin       bool   `json:"roomJoin"`
	Room           string `json:"room"`
	CanPublish     bool   `json:"canPublish"`
	CanSubscribe   bool   `json:"canSubscribe"`
	CanPublishData bool   `json:"canPublishData"`
}

type roomClaims struct {
	Name  string     `json:"name,omitempty"`
	Video VideoGrant `json:"video"`
	jwt.RegisteredClaims
}

//go:generate mockgen -source=./token.go -destination=../../mocks/room.mock.go -package=roommocks -typed=true TokenService
type TokenService interface {
	// IssueToken 为 uid 签发加入 room 的凭证
	IssueToken(room string, uid int64) (domain.RoomToken, error)
}

type tokenService struct {
	apiKey    string
	apiSecret string
	wsURL     string
}

func NewTokenService(apiKey, apiSecret, wsURL string) TokenService {
	return &tokenService{
		apiKey:    apiKey,
		apiSecret: apiSecret,
		wsURL:     wsURL,
	}
}

func (s *tokenService) IssueToken(room string, uid int64) (domain.RoomToken, error) {
	if s.apiKey == "" || s.apiSecret == "" {
		return domain.RoomToken{}, ErrNotConfigured
	}
	identity := fmt.Sprintf("user-%d", uid)
	now := time.Now()
	claims := roomClaims{
		Name: identity,
		Video: VideoGrant{
			RoomJoin:       true,
			Room:           room,
			CanPublish:     true,
			CanSubscribe:   true,
			CanPublishData: true,
		},
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.apiKey,
			Subject:   identity,
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.apiSecret))
	if err != nil {
		return domain.RoomToken{}, fmt.Errorf("签发房间凭证失败: %w", err)
	}
	return domain.RoomToken{
		Token: signed,
		URL:   s.wsURL,
	}, nil
}
