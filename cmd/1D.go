/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/edgeflux/InputParameters"
	"github.com/notargets/edgeflux/model_problems/EdgeFlux1D"
	"github.com/notargets/edgeflux/physics"
)

// OneDCmd represents the 1D command
var OneDCmd = &cobra.Command{
	Use:   "1D",
	Short: "One Dimensional edge transport",
	Long: `
Runs the edge transport solver from a YAML run configuration,

edgeflux 1D -I run.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		m1d := &Model1D{
			ICFile:        viper.GetString("inputConditionsFile"),
			SaveDirectory: viper.GetString("saveDirectory"),
			LogFrequency:  viper.GetInt("logFrequency"),
			PrintOnly:     viper.GetBool("printConstants"),
		}
		ip, err := processInput(m1d)
		if err != nil {
			logrus.Fatal(err)
		}
		if viper.GetBool("profile") {
			dir := m1d.SaveDirectory
			if dir == "" {
				dir = "."
			}
			defer profile.Start(profile.CPUProfile, profile.ProfilePath(dir)).Stop()
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err = Run1D(ctx, m1d, ip); err != nil {
			logrus.Fatal(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(OneDCmd)
	OneDCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for the run configuration, keys as in:\n\t- nx, total_timeSteps, timeStep\n\t- Gamma_c, q_c, taylor_model, D_choice")
	OneDCmd.Flags().StringP("saveDirectory", "o", "", "directory for TSV files and plots, overrides save_directory")
	OneDCmd.Flags().IntP("logFrequency", "l", 50, "number of steps between progress messages")
	OneDCmd.Flags().Bool("printConstants", false, "print the derived constants and exit")
	for _, name := range []string{"inputConditionsFile", "saveDirectory", "logFrequency", "printConstants"} {
		_ = viper.BindPFlag(name, OneDCmd.Flags().Lookup(name))
	}
}

type Model1D struct {
	ICFile        string
	SaveDirectory string
	LogFrequency  int
	PrintOnly     bool
}

const exampleFile = `
########################################
taylor_model: False
Gamma_c: -1.0e22
q_c: -5.0e24
nx: 100
total_timeSteps: 2000
timeStep: 5.0e-6
res_tol: 1.0e14
D_choice: D_flow_shear
save_TSVs: True
save_directory: Short_Plots
########################################
`

func processInput(m1d *Model1D) (ip *InputParameters.InputParametersEdge1D, err error) {
	var (
		data []byte
	)
	if len(m1d.ICFile) == 0 {
		fmt.Printf("Example File:%s\n", exampleFile)
		err = fmt.Errorf("must supply an input parameters file (-I, --inputConditionsFile) in YAML format")
		return
	}
	if data, err = os.ReadFile(m1d.ICFile); err != nil {
		return
	}
	ip = &InputParameters.InputParametersEdge1D{}
	if err = ip.Parse(data); err != nil {
		err = fmt.Errorf("%s: %w", m1d.ICFile, err)
	}
	return
}

// Run1D builds the constants once and runs the transport to completion.
func Run1D(ctx context.Context, m1d *Model1D, ip *InputParameters.InputParametersEdge1D) (err error) {
	var (
		cfg           physics.Config
		cs            physics.ConstantSet
		opts          EdgeFlux1D.OutputOptions
		notes, notes2 []string
		tr            *EdgeFlux1D.Transport
		out           *EdgeFlux1D.Output
	)
	if cfg, notes, err = ip.Validate(); err != nil {
		return
	}
	if opts, notes2, err = ip.Output(); err != nil {
		return
	}
	for _, n := range append(notes, notes2...) {
		logrus.Info(n)
	}
	if m1d.SaveDirectory != "" {
		opts.SaveDirectory = m1d.SaveDirectory
	}
	if cs, err = physics.NewConstantSet(cfg); err != nil {
		return
	}
	if m1d.PrintOnly || logrus.IsLevelEnabled(logrus.DebugLevel) {
		ip.Print()
		cs.Print()
		if m1d.PrintOnly {
			return
		}
	}
	if tr, err = EdgeFlux1D.NewTransport(cs, cfg); err != nil {
		return
	}
	if m1d.LogFrequency > 0 {
		tr.LogFrequency = m1d.LogFrequency
	}
	if out, err = EdgeFlux1D.NewOutput(opts, cfg.Numerics.TotalTimeSteps); err != nil {
		return
	}
	tr.AddObserver(out.Observe)
	if err = tr.Run(ctx); err != nil {
		return
	}
	if err = out.Err(); err != nil {
		return
	}
	files, err := out.SavePlots()
	for _, f := range files {
		logrus.WithField("file", filepath.Base(f)).Info("saved plot")
	}
	return
}
