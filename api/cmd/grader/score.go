package main

import (
	"encoding/json"
	"errors"

	"github.com/spf13/cobra"

	"answer-grader/api/internal/grading"
	"answer-grader/api/internal/similarity"
)

type scoreOutput struct {
	Scores similarity.Scores      `json:"scores"`
	Rouge  similarity.RougeScores `json:"rouge"`
}

func newScoreCommand() *cobra.Command {
	var (
		student   string
		model     string
		precision int
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Print BLEU and ROUGE scores for one answer pair, without feedback",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if precision < 0 || precision > 12 {
				return errors.New("--precision must be between 0 and 12")
			}
			pair, err := grading.NewAnswerPair(&student, &model)
			if err != nil {
				return err
			}
			cand := similarity.Tokenize(pair.StudentText)
			ref := similarity.Tokenize(pair.ModelText)

			out := scoreOutput{
				Scores: similarity.ComputeTokens(cand, ref).Rounded(precision),
				Rouge:  similarity.ROUGE(cand, ref).Rounded(precision),
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
	cmd.Flags().StringVarP(&student, "student", "s", "", "Student answer")
	cmd.Flags().StringVarP(&model, "model", "m", "", "Model answer")
	cmd.Flags().IntVar(&precision, "precision", 4, "Decimal places in the output")
	_ = cmd.MarkFlagRequired("student")
	_ = cmd.MarkFlagRequired("model")
	return cmd
}
