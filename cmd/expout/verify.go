package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fractalqb/expout"
)

func init() {
	verifyCmd.RunE = verifyFiles
	verifyCmd.Flags().StringVarP(&verifyCmd.expfile, "expect", "e", "",
		"Set expectation file name")
	verifyCmd.MarkFlagRequired("expect")
	verifyCmd.Flags().StringVar(&verifyCmd.except, "except", "",
		"Ignore lines matching this regexp on both sides")
	verifyCmd.Flags().StringVarP(&verifyCmd.label, "label", "l", "",
		"Override the label of the expectation file")
	verifyCmd.Flags().StringVarP(&verifyCmd.message, "message", "m", "",
		"Override the message of the expectation file")
	verifyCmd.Flags().BoolVar(&verifyCmd.keepNoise, "keep-noise", false,
		"Do not drop diagnostic lines from the output")
	verifyCmd.Flags().StringVar(&verifyCmd.noisePrefix, "noise-prefix", expout.DefaultNoisePrefix,
		"Prefix of diagnostic lines that are dropped from the output")
	verifyCmd.Flags().BoolVar(&verifyCmd.logReport, "log-report", false,
		"Log mismatches as structured records instead of printing them")
	rootCmd.AddCommand(&verifyCmd.Command)
}

var verifyCmd = struct {
	cobra.Command
	expfile     string
	except      string
	label       string
	message     string
	keepNoise   bool
	noisePrefix string
	logReport   bool
}{
	Command: cobra.Command{
		Use:   "verify -e FILE [OUTPUT...]",
		Short: "Verify captured output files against an expectation file",
	},
}

var errMismatch = errors.New("output does not match expectation")

func verifyFiles(cmd *cobra.Command, files []string) error {
	ef, err := expout.LoadFile(verifyCmd.expfile)
	if err != nil {
		return err
	}
	vrf := newVerifier(cmd.OutOrStdout())
	if len(files) == 0 {
		return verifyRd(vrf, ef, "stdin", cmd.InOrStdin())
	}
	failed := false
	for _, f := range files {
		switch err := verifyFile(vrf, ef, f); {
		case errors.Is(err, errMismatch):
			failed = true
		case err != nil:
			return err
		}
	}
	if failed {
		return errMismatch
	}
	return nil
}

func newVerifier(out io.Writer) *expout.Verifier {
	vrf := &expout.Verifier{
		NoisePrefix: verifyCmd.noisePrefix,
		KeepNoise:   verifyCmd.keepNoise,
		Reporter:    expout.TextReporter{W: out},
	}
	if verifyCmd.logReport {
		vrf.Reporter = expout.ZapReporter{Log: logger()}
	}
	return vrf
}

func verifyFile(vrf *expout.Verifier, ef *expout.File, name string) error {
	r, err := os.Open(name)
	if err != nil {
		return err
	}
	defer r.Close()
	return verifyRd(vrf, ef, name, r)
}

func verifyRd(vrf *expout.Verifier, ef *expout.File, name string, r io.Reader) error {
	log := logger().With(
		zap.String("output", name),
		zap.String("expect", verifyCmd.expfile),
	)
	actual, err := expout.ReadLines(r)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	log.Debug("read output", zap.Int("lines", len(actual)))
	var opts []expout.Option
	if verifyCmd.except != "" {
		opts = append(opts, expout.WithExcept(verifyCmd.except))
	}
	if verifyCmd.label != "" {
		opts = append(opts, expout.WithLabel(verifyCmd.label))
	}
	if verifyCmd.message != "" {
		opts = append(opts, expout.WithMessage(verifyCmd.message))
	}
	err = ef.Verify(vrf, actual, opts...)
	var fail *expout.Failure
	switch {
	case err == nil:
		log.Info("output matches expectation")
		return nil
	case errors.As(err, &fail):
		log.Info("output mismatch", zap.String("label", fail.Label))
		return errMismatch
	}
	return fmt.Errorf("%s: %w", name, err)
}
