package benchmark_test

import (
	"testing"

	goflags "github.com/jessevdk/go-flags"
	"github.com/spf13/cobra"
	"github.com/urfave/cli/v2"

	"github.com/dzonerzy/go-gram/gram"
)

// Benchmark simple CLI with basic switches
// Tests parsing performance with int and bool switches
// Each library matches the same argument list for fair comparison

func BenchmarkSimpleCLI_GoGram(b *testing.B) {
	g := gram.New("bench", "benchmark app").
		Command("run", "Run benchmark").
		Switch("port", "Server port").Value("n", gram.KindInt).Back().
		Switch("verbose", "Verbose output").Back().
		Back().
		Build()

	args := []string{"run", "--port", "9000", "--verbose"}
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = g.Parse(args)
	}
}

func BenchmarkSimpleCLI_Cobra(b *testing.B) {
	args := []string{"run", "--port", "9000", "--verbose"}
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		rootCmd := &cobra.Command{Use: "bench"}
		runCmd := &cobra.Command{
			Use: "run",
			Run: func(_ *cobra.Command, _ []string) {},
		}
		runCmd.Flags().IntP("port", "p", 8080, "Server port")
		runCmd.Flags().BoolP("verbose", "v", false, "Verbose output")
		rootCmd.AddCommand(runCmd)
		rootCmd.SetArgs(args)
		_ = rootCmd.Execute()
	}
}

func BenchmarkSimpleCLI_Urfave(b *testing.B) {
	args := []string{"bench", "run", "--port", "9000", "--verbose"}
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		app := &cli.App{
			Name: "bench",
			Commands: []*cli.Command{
				{
					Name: "run",
					Flags: []cli.Flag{
						&cli.IntFlag{Name: "port", Value: 8080, Usage: "Server port"},
						&cli.BoolFlag{Name: "verbose", Usage: "Verbose output"},
					},
					Action: func(_ *cli.Context) error { return nil },
				},
			},
		}
		_ = app.Run(args)
	}
}

func BenchmarkSimpleCLI_GoFlags(b *testing.B) {
	args := []string{"--port", "9000", "--verbose"}
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		var opts struct {
			Port    int  `long:"port" default:"8080"`
			Verbose bool `long:"verbose"`
		}
		_, _ = goflags.ParseArgs(&opts, args)
	}
}

// Benchmark with subcommands and inherited switches
// Tests command routing plus switch resolution through the parent chain

func BenchmarkSubcommands_GoGram(b *testing.B) {
	g := gram.New("bench", "benchmark app").
		Switch("global", "Global switch").Back().
		Command("serve", "Start server").
		Switch("port", "Server port").Value("n", gram.KindInt).Back().
		Switch("host", "Server host").Value("addr", gram.KindString).Back().
		Back().
		Build()

	args := []string{"--global", "serve", "--port", "9000", "--host", "0.0.0.0"}
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = g.Parse(args)
	}
}

func BenchmarkSubcommands_Cobra(b *testing.B) {
	args := []string{"--global", "serve", "--port", "9000", "--host", "0.0.0.0"}
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		rootCmd := &cobra.Command{Use: "bench"}
		rootCmd.PersistentFlags().Bool("global", false, "Global switch")

		serveCmd := &cobra.Command{
			Use: "serve",
			Run: func(_ *cobra.Command, _ []string) {},
		}
		serveCmd.Flags().IntP("port", "p", 8080, "Server port")
		serveCmd.Flags().String("host", "localhost", "Server host")
		rootCmd.AddCommand(serveCmd)
		rootCmd.SetArgs(args)
		_ = rootCmd.Execute()
	}
}

func BenchmarkSubcommands_Urfave(b *testing.B) {
	args := []string{"bench", "--global", "serve", "--port", "9000", "--host", "0.0.0.0"}
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		app := &cli.App{
			Name: "bench",
			Flags: []cli.Flag{
				&cli.BoolFlag{Name: "global", Usage: "Global switch"},
			},
			Commands: []*cli.Command{
				{
					Name: "serve",
					Flags: []cli.Flag{
						&cli.IntFlag{Name: "port", Value: 8080, Usage: "Server port"},
						&cli.StringFlag{Name: "host", Value: "localhost", Usage: "Server host"},
					},
					Action: func(_ *cli.Context) error { return nil },
				},
			},
		}
		_ = app.Run(args)
	}
}

// Benchmark positional-heavy invocations
// go-flags models positionals via a dedicated struct; cobra and urfave
// hand them over as raw args

func BenchmarkPositionals_GoGram(b *testing.B) {
	g := gram.New("bench", "benchmark app").
		Positional("src", gram.KindPath, "Source file").Back().
		Positional("dst", gram.KindPath, "Destination file").Back().
		Positional("extra", gram.KindString, "Extras").Repeated().Back().
		Build()

	args := []string{"a.txt", "b.txt", "x", "y", "z"}
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = g.Parse(args)
	}
}

func BenchmarkPositionals_GoFlags(b *testing.B) {
	args := []string{"a.txt", "b.txt", "x", "y", "z"}
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		var opts struct {
			Positional struct {
				Src   string
				Dst   string
				Extra []string
			} `positional-args:"yes"`
		}
		_, _ = goflags.ParseArgs(&opts, args)
	}
}
