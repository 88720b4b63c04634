package service

import (
	"testing"

	"github.com/ecodeclub/mockly/internal/interview/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFeedback(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name    string
		raw     string
		want    domain.Feedback
		wantErr error
	}{
		{
			name: "裸 JSON",
			raw:  `{"totalScore": 80, "categoryScores": [{"name": "Communication", "score": 80, "comment": "clear"}], "strengths": ["clarity"], "areasForImprovement": ["depth"], "finalAssessment": "solid"}`,
			want: domain.Feedback{
				TotalScore: 80,
				CategoryScores: []domain.CategoryScore{
					{Name: "Communication", Score: 80, Comment: "clear"},
				},
				Strengths:           []string{"clarity"},
				AreasForImprovement: []string{"depth"},
				FinalAssessment:     "solid",
			},
		},
		{
			name: "带 markdown 代码块",
			raw:  "Here is the evaluation:\n```json\n{\"totalScore\": 75, \"categoryScores\": [{\"name\": \"Technical Knowledge\", \"score\": 75}]}\n```\nGood luck!",
			want: domain.Feedback{
				TotalScore: 75,
				CategoryScores: []domain.CategoryScore{
					{Name: "Technical Knowledge", Score: 75},
				},
			},
		},
		{
			name: "JSON 前后混着闲聊",
			raw:  `Sure! {"totalScore": 60, "finalAssessment": "needs work"} Let me know if you need more.`,
			want: domain.Feedback{
				TotalScore:      60,
				FinalAssessment: "needs work",
			},
		},
		{
			name:    "解析不出来就报错",
			raw:     "I could not evaluate this interview.",
			wantErr: ErrInvalidFeedback,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			feedback, err := parseFeedback(tc.raw)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				// 原始输出要保留在错误信息里
				assert.Contains(t, err.Error(), tc.raw)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, feedback)
		})
	}
}
