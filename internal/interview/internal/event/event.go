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

package event

// InterviewCompletedEvent 一场面试完成并落库之后发出，
// 下游做统计或者通知用
type InterviewCompletedEvent struct {
	Uid         int64  `json:"uid"`
	Sid         string `json:"sid"`
	InterviewId int64  `json:"interviewId"`
	TargetRole  string `json:"targetRole"`
	TotalScore  int    `json:"totalScore"`
	// 分钟
	Duration int64 `json:"duration"`
	// 毫秒时间戳
	CompletedAt int64 `json:"completedAt"`
}
