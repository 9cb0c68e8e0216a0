package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/horizonkit/texpack"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Print the packing profile reference table",
	Run: func(cmd *cobra.Command, _ []string) {
		printProfiles(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(profilesCmd)
}

// printProfiles renders the fixed profile table, one row per output image.
func printProfiles(w io.Writer) {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PROFILE\tSUFFIX\tIMAGE\tLAYOUT\tEMITTED")
	for _, p := range texpack.Profiles() {
		suffix := p.Suffix
		if suffix == "" {
			suffix = "(none)"
		}
		if len(p.Images) == 0 {
			fmt.Fprintf(tw, "%s\t%s\t-\t-\tnever (marker only)\n", p.Name, suffix)
			continue
		}
		for i, img := range p.Images {
			name, sfx := p.Name, suffix
			if i > 0 {
				name, sfx = "", ""
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
				name, sfx, img.FilenameSuffix, describeLayout(img), describeEmit(img))
		}
	}
	tw.Flush()
}

// describeLayout renders an image's channel routing, e.g.
// "RGB=BaseColor A=Roughness".
func describeLayout(img texpack.ImageSpec) string {
	parts := make([]string, 0, len(img.Channels))
	for _, as := range img.Channels {
		parts = append(parts, fmt.Sprintf("%s=%s", as.Dest, as.Source))
	}
	return strings.Join(parts, " ")
}

// describeEmit renders an image's emission condition.
func describeEmit(img texpack.ImageSpec) string {
	if img.Emit == texpack.EmitAlways {
		return "always"
	}
	parts := make([]string, 0, len(img.EmitSet))
	for _, ch := range img.EmitSet {
		parts = append(parts, ch.String())
	}
	return "if any of " + strings.Join(parts, ", ")
}
