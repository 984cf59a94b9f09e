package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/birkelund/voxvault/internal/journal"
	"github.com/birkelund/voxvault/pkg/audio"
)

var (
	flagRecordOut       string
	flagRecordDuration  time.Duration
	flagRecordKeepAudio bool
	flagRecordNoProcess bool
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record from the microphone and journal the result",
	Long: `Record captures audio from the default input device until Ctrl+C or
--duration elapses, then runs the full pipeline on the recording.

With --no-process only the WAV file is saved. --keep-audio overrides
the privacy setting that deletes recordings after processing.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		// Ctrl+C ends the recording, not the command: processing
		// afterwards runs on a fresh context.
		recCtx, stopSignals := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stopSignals()

		maxDuration := flagRecordDuration
		if maxDuration == 0 {
			maxDuration = cfg.Audio.MaxDuration.Std()
		}

		fmt.Println(titleStyle.Render("Recording") + labelStyle.Render("  press Ctrl+C to stop"))
		recorder := audio.NewMicRecorder(audio.Format{
			SampleRate: cfg.Audio.SampleRate,
			Channels:   cfg.Audio.Channels,
		})
		clip, err := recorder.Record(recCtx, maxDuration)
		if err != nil {
			return err
		}
		stopSignals()

		if cfg.Audio.SilenceThreshold > 0 {
			trimmed := audio.TrimSilence(clip.Data, clip.Format.SampleRate, cfg.Audio.SilenceThreshold)
			if len(trimmed) == 0 {
				return audio.ErrNoAudio
			}
			clip = &audio.Clip{Data: trimmed, Format: clip.Format}
		}

		outPath := flagRecordOut
		if outPath == "" {
			outPath = filepath.Join(os.TempDir(),
				fmt.Sprintf("voxvault_%d.wav", time.Now().UnixMilli()))
		}
		if err := audio.WriteWAVFile(outPath, clip); err != nil {
			return err
		}
		fmt.Println(labelStyle.Render("  saved:   ") + pathStyle.Render(outPath) +
			labelStyle.Render(fmt.Sprintf("  (%s)", clip.Duration().Round(time.Second))))

		if flagRecordNoProcess {
			return nil
		}

		if flagRecordKeepAudio {
			cfg.Privacy.DeleteAudioAfterProcessing = false
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

		res, err := j.ProcessFile(context.Background(), outPath)
		if err != nil {
			return err
		}
		printResult(res)
		return nil
	},
}

func init() {
	recordCmd.Flags().StringVarP(&flagRecordOut, "output", "o", "", "WAV output path (default: temp file)")
	recordCmd.Flags().DurationVar(&flagRecordDuration, "duration", 0, "stop recording after this long (default: config max_duration)")
	recordCmd.Flags().BoolVar(&flagRecordKeepAudio, "keep-audio", false, "keep the source recording even when privacy says delete")
	recordCmd.Flags().BoolVar(&flagRecordNoProcess, "no-process", false, "only save the recording, do not journal it")
}
