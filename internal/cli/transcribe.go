package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/birkelund/voxvault/pkg/audio"
	"github.com/birkelund/voxvault/pkg/provider/stt"
)

var flagTranscribeJSON bool

var transcribeCmd = &cobra.Command{
	Use:   "transcribe <file>",
	Short: "Transcribe a recording and print the text",
	Long: `Transcribe runs only the speech-to-text stage on a WAV file and
prints the transcript. No note is written and nothing is enriched.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		clip, err := audio.ReadWAVFile(args[0])
		if err != nil {
			return err
		}
		clip = clip.Resampled(16000)

		provider, err := newProvider(cfg)
		if err != nil {
			return err
		}
		defer closeProvider(provider)

		res, err := provider.Transcribe(cmd.Context(), stt.Request{
			Samples:       clip.Samples(),
			SampleRate:    16000,
			Language:      cfg.Transcription.Language,
			Temperature:   cfg.Transcription.Temperature,
			InitialPrompt: cfg.Transcription.InitialPrompt,
		})
		if err != nil {
			return err
		}

		if flagTranscribeJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		}
		fmt.Println(res.Text)
		return nil
	},
}

func init() {
	transcribeCmd.Flags().BoolVar(&flagTranscribeJSON, "json", false, "print the full result as JSON")
}
