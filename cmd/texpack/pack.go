package main

import (
	"fmt"
	"io"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/horizonkit/texpack"
	"github.com/horizonkit/texpack/scene"
)

var (
	packOut     string
	packRes     int
	packWorkers int
)

var packCmd = &cobra.Command{
	Use:   "pack <manifest.hcl> [manifest.hcl...]",
	Short: "Pack the materials of one or more HCL manifests",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var materials []*scene.Material
		for _, path := range args {
			mats, err := scene.LoadManifest(path)
			if err != nil {
				return err
			}
			materials = append(materials, mats...)
		}

		// Rooting the filesystem at the output directory keeps absolute
		// --out paths working; billy filesystems never escape their root.
		packer := texpack.NewPacker(
			texpack.WithFilesystem(osfs.New(packOut)),
			texpack.WithOutputDir("."),
			texpack.WithWorkers(packWorkers),
		)
		report := packer.PackAll(scene.Batch(materials), packRes)
		printReport(cmd.OutOrStdout(), report)

		if failed := report.Failed(); failed > 0 {
			return fmt.Errorf("%d of %d materials failed", failed, len(report.Results))
		}
		return nil
	},
}

func init() {
	packCmd.Flags().StringVarP(&packOut, "out", "o", ".", "output directory")
	packCmd.Flags().IntVarP(&packRes, "res", "r", 0,
		"output resolution (0 infers from source images)")
	packCmd.Flags().IntVarP(&packWorkers, "workers", "w", 0,
		"concurrent materials (0 uses all CPUs but one)")
	rootCmd.AddCommand(packCmd)
}

// printReport writes the per-material outcome list and a summary line.
func printReport(w io.Writer, report *texpack.BatchReport) {
	for _, res := range report.Results {
		if res.Err != nil {
			fmt.Fprintf(w, "FAIL  %s: %v\n", res.Material, res.Err)
			continue
		}
		if len(res.Files) == 0 {
			fmt.Fprintf(w, "ok    %s (no output)\n", res.Material)
			continue
		}
		fmt.Fprintf(w, "ok    %s -> %v\n", res.Material, res.Files)
	}
	fmt.Fprintf(w, "%d packed, %d failed\n", report.Packed(), report.Failed())
}
