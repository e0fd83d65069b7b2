package commands

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"

	"github.com/ngrash/go-temporal/internal/isodate"
	"github.com/ngrash/go-temporal/tzdata"
	"github.com/ngrash/go-temporal/tzdb"
	"github.com/ngrash/go-temporal/tzif"
	"github.com/ngrash/go-temporal/zoneinfo"
)

func zoneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "zone",
		Short: "Inspect and build time zone data",
	}
	cmd.AddCommand(zoneInfoCmd(), zoneDiffCmd(), zoneCompileCmd(), zoneBuildCmd(), zoneTransitionsCmd())
	return cmd
}

func readTZif(path string) (tzif.File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return tzif.File{}, err
	}
	r := bytes.NewReader(b)
	f, err := tzif.Decode(r)
	if err != nil {
		return tzif.File{}, fmt.Errorf("decoding %s: %w", path, err)
	}
	if r.Len() > 0 {
		logger.Warn("trailing data after TZif file", "file", path, "bytes", r.Len())
	}
	return f, nil
}

func zoneInfoCmd() *cobra.Command {
	var printV1 bool
	cmd := &cobra.Command{
		Use:   "info <tzif file>",
		Short: "Print the headers, data blocks and footer of a TZif file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := readTZif(args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if f.Version == tzif.V1 || printV1 {
				printHeader(w, f.V1Header)
				printBlock(w, tzif.V1, f.V1)
			}
			if f.Version > tzif.V1 {
				printHeader(w, f.V2Header)
				printBlock(w, f.Version, f.V2)
				fmt.Fprintln(w, "Footer")
				fmt.Fprintln(w, "  TZ string =", f.Footer)
				fmt.Fprintln(w)
			}
			if err := tzif.Validate(f); err != nil {
				fmt.Fprintf(w, "Invalid:\n  %s\n", strings.ReplaceAll(err.Error(), "\n", "\n  "))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&printV1, "v1", false, "always print the version 1 header and data")
	return cmd
}

func printHeader(w io.Writer, h tzif.Header) {
	fmt.Fprintln(w, "Header")
	fmt.Fprintln(w, "  version  =", h.Version)
	fmt.Fprintln(w, "  isutcnt  =", h.Isutcnt)
	fmt.Fprintln(w, "  isstdcnt =", h.Isstdcnt)
	fmt.Fprintln(w, "  leapcnt  =", h.Leapcnt)
	fmt.Fprintln(w, "  timecnt  =", h.Timecnt)
	fmt.Fprintln(w, "  typecnt  =", h.Typecnt)
	fmt.Fprintln(w, "  charcnt  =", h.Charcnt)
	fmt.Fprintln(w)
}

func printBlock[T tzif.Time](w io.Writer, v tzif.Version, b tzif.DataBlock[T]) {
	fmt.Fprintln(w, "Data block", v)
	fmt.Fprintf(w, "  TransitionTimes (%d) = %v\n", len(b.TransitionTimes), b.TransitionTimes)
	fmt.Fprintf(w, "  TransitionTypes (%d) = %v\n", len(b.TransitionTypes), b.TransitionTypes)
	fmt.Fprintf(w, "  LocalTimeTypes (%d) = %+v\n", len(b.LocalTimeTypes), b.LocalTimeTypes)
	fmt.Fprintf(w, "  Designations (%d) = %q\n", len(b.Designations), strings.Split(strings.TrimSuffix(string(b.Designations), "\x00"), "\x00"))
	fmt.Fprintf(w, "  LeapSeconds (%d) = %+v\n", len(b.LeapSeconds), b.LeapSeconds)
	fmt.Fprintf(w, "  StandardWall (%d) = %v\n", len(b.StandardWall), b.StandardWall)
	fmt.Fprintf(w, "  UTLocal (%d) = %v\n", len(b.UTLocal), b.UTLocal)
	fmt.Fprintln(w)
}

func zoneDiffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <tzif file A> <tzif file B>",
		Short: "Compare two TZif files",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := readTZif(args[0])
			if err != nil {
				return err
			}
			b, err := readTZif(args[1])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if diff := cmp.Diff(a, b); diff != "" {
				fmt.Fprintln(w, "files are different: -A +B")
				fmt.Fprintln(w, diff)
			} else {
				fmt.Fprintln(w, "files are identical")
			}
			return nil
		},
	}
}

func zoneCompileCmd() *cobra.Command {
	var name, out string
	cmd := &cobra.Command{
		Use:   "compile <tz source file>...",
		Short: "Compile a zone from tz source files into TZif",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var src tzdata.File
			for _, path := range args {
				f, err := parseSource(path)
				if err != nil {
					return err
				}
				src.Merge(f)
			}
			z, err := zoneinfo.FromSource(src, name)
			if err != nil {
				return err
			}
			data, err := z.TZif()
			if err != nil {
				return err
			}
			logger.Info("compiled zone", "zone", name, "transitions", len(z.Transitions()), "footer", z.Footer())

			w := cmd.OutOrStdout()
			if out != "" && out != "-" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			bw := bufio.NewWriter(w)
			if err := data.Encode(bw); err != nil {
				return err
			}
			return bw.Flush()
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "zone to compile, for example Europe/Zurich")
	cmd.Flags().StringVarP(&out, "output", "o", "-", "output file")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func parseSource(path string) (tzdata.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return tzdata.File{}, err
	}
	defer f.Close()
	src, err := tzdata.Parse(f)
	if err != nil {
		return tzdata.File{}, fmt.Errorf("%s: %w", path, err)
	}
	return src, nil
}

func zoneBuildCmd() *cobra.Command {
	var out string
	var workers int
	cmd := &cobra.Command{
		Use:   "build <tzdata archive>",
		Short: "Compile a tzdb release archive into a zoneinfo directory",
		Long: "Build reads a tzdata .tar.gz release and writes a TZif file for every zone and link below the output\n" +
			"directory. Point --zoneinfo-dir at the result to use it.",
		Example: "  temporal zone build tzdata2024b.tar.gz -o ./zoneinfo",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			rel, err := tzdb.ReadArchive(bufio.NewReader(f))
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			src, err := rel.Source(cmd.Context())
			if err != nil {
				return err
			}
			names, err := tzdb.Build(cmd.Context(), src, out, tzdb.BuildOptions{Workers: workers, Logger: logger})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "tzdb %s: wrote %d zones to %s\n", rel.Version, len(names), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output directory")
	cmd.Flags().IntVar(&workers, "workers", 0, "zones compiled at once (default GOMAXPROCS)")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func zoneTransitionsCmd() *cobra.Command {
	var from, to int
	cmd := &cobra.Command{
		Use:   "transitions <zone>",
		Short: "List the UTC offset changes of a zone between two years",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			z, err := loader.Load(args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			sec := isodate.EpochDays(from, 1, 1)*86400 - 1
			end := isodate.EpochDays(to+1, 1, 1) * 86400
			for {
				t, ok := z.NextTransition(sec)
				if !ok || t.At >= end {
					return nil
				}
				before := z.Lookup(t.At - 1)
				fmt.Fprintf(w, "%d  %s %+d -> %s %+d", t.At, before.Abbrev, before.Offset, t.Type.Abbrev, t.Type.Offset)
				if t.Type.DST {
					fmt.Fprint(w, " DST")
				}
				fmt.Fprintln(w)
				sec = t.At
			}
		},
	}
	cmd.Flags().IntVar(&from, "from", 1970, "first year")
	cmd.Flags().IntVar(&to, "to", 2037, "last year")
	return cmd
}
