package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/birkelund/voxvault/internal/journal"
	"github.com/birkelund/voxvault/pkg/provider/stt"
)

var flagProcessText string

var processCmd = &cobra.Command{
	Use:   "process <file>",
	Short: "Turn an existing recording into a journal note",
	Long: `Process runs the full pipeline on an existing audio file:
transcription, vocabulary correction, enrichment, and note assembly.

With --text the audio stages are skipped and the given text is
journaled directly.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagProcessText == "" && len(args) == 0 {
			return errors.New("provide an audio file or --text")
		}

		ctx := cmd.Context()

		if flagProcessText != "" {
			j, err := journal.New(cfg, noProvider{})
			if err != nil {
				return err
			}
			defer j.Close()
			res, err := j.ProcessText(ctx, flagProcessText)
			if err != nil {
				return err
			}
			printResult(res)
			return nil
		}

		provider, err := newProvider(cfg)
		if err != nil {
			return err
		}
		defer closeProvider(provider)

		j, err := journal.New(cfg, provider)
		if err != nil {
			return err
		}
		defer j.Close()

		res, err := j.ProcessFile(ctx, args[0])
		if err != nil {
			return err
		}
		printResult(res)
		return nil
	},
}

// printResult renders one processed entry for the terminal.
func printResult(res *journal.Result) {
	fmt.Println(titleStyle.Render("Journal entry " + res.DateKey))
	fmt.Println(labelStyle.Render("  note:    ") + pathStyle.Render(res.NotePath))
	fmt.Println(labelStyle.Render("  mood:    ") + renderMood(res.Entry.Emotion.Dominant()))
	fmt.Println(labelStyle.Render("  words:   ") + fmt.Sprint(res.Entry.Stats.WordCount))
	if len(res.Entry.Topics) > 0 {
		fmt.Println(labelStyle.Render("  topics:  ") + strings.Join(res.Entry.Topics, ", "))
	}
	if len(res.Corrections) > 0 {
		fmt.Println(labelStyle.Render("  fixes:   ") + fmt.Sprintf("%d vocabulary corrections", len(res.Corrections)))
	}
	if res.AudioFile != "" {
		fmt.Println(labelStyle.Render("  audio:   ") + res.AudioFile)
	}
	if res.ArtifactErr != nil {
		fmt.Println(errorStyle.Render("  warning: ") + "audio archive failed: " + res.ArtifactErr.Error())
	}
	if res.SourceDeleted {
		fmt.Println(labelStyle.Render("  privacy: ") + "source recording deleted")
	}
}

// noProvider satisfies the journal constructor for text-only entries
// where no transcription ever happens.
type noProvider struct{}

func (noProvider) Name() string { return "none" }

func (noProvider) Transcribe(context.Context, stt.Request) (*stt.Result, error) {
	return nil, errors.New("cli: text entry has no transcription")
}

func init() {
	processCmd.Flags().StringVar(&flagProcessText, "text", "", "journal this text directly, skipping audio")
}
