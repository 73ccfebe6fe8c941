package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/born-ml/numgo/numpy"
	"github.com/born-ml/numgo/tensor"
)

type bitpackFlags struct {
	in       string
	out      string
	axis     int
	count    int
	bitorder string
}

func (f *bitpackFlags) register(flags *pflag.FlagSet, withCount bool) {
	flags.StringVar(&f.in, "in", "", "input .npy file")
	flags.StringVar(&f.out, "out", "", "output .npy file")
	flags.IntVar(&f.axis, "axis", 0, "axis to operate on (default: flattened input)")
	flags.StringVar(&f.bitorder, "bitorder", string(tensor.BigEndian), "bit order: big or little")
	if withCount {
		flags.IntVar(&f.count, "count", 0, "number of elements to unpack, negative trims (default: all bits)")
	}
	_ = cobra.MarkFlagRequired(flags, "in")
	_ = cobra.MarkFlagRequired(flags, "out")
}

// axisArg returns nil unless --axis was given, so an unset flag means None.
func (f *bitpackFlags) axisArg(cmd *cobra.Command) any {
	if !cmd.Flags().Changed("axis") {
		return nil
	}
	return f.axis
}

func (f *bitpackFlags) countArg(cmd *cobra.Command) any {
	if !cmd.Flags().Changed("count") {
		return nil
	}
	return f.count
}

func newPackbitsCmd() *cobra.Command {
	f := &bitpackFlags{}
	cmd := &cobra.Command{
		Use:   "packbits",
		Short: "Pack the elements of an array into bits of a uint8 array",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := numpy.Load(f.in)
			if err != nil {
				return err
			}
			packed, err := numpy.Packbits(a, f.axisArg(cmd), f.bitorder)
			if err != nil {
				return err
			}
			if err := numpy.Save(f.out, packed); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s -> %s uint8\n", f.out, a.Shape(), packed.Shape())
			return nil
		},
	}
	f.register(cmd.Flags(), false)
	return cmd
}

func newUnpackbitsCmd() *cobra.Command {
	f := &bitpackFlags{}
	cmd := &cobra.Command{
		Use:   "unpackbits",
		Short: "Unpack the bytes of a uint8 array into 0/1 elements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := numpy.Load(f.in)
			if err != nil {
				return err
			}
			bits, err := numpy.Unpackbits(a, f.axisArg(cmd), f.countArg(cmd), f.bitorder)
			if err != nil {
				return err
			}
			if err := numpy.Save(f.out, bits); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s -> %s uint8\n", f.out, a.Shape(), bits.Shape())
			return nil
		},
	}
	f.register(cmd.Flags(), true)
	return cmd
}
