package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/usherasnick/file-flow/kafka"
	readflow "github.com/usherasnick/file-flow/read-flow"
	workerpool "github.com/usherasnick/file-flow/worker-pool"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	rootCmd := &cobra.Command{
		Use:   "readflow",
		Short: "Stream a file chunk by chunk under backpressure",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
			if verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
	}
	rootCmd.PersistentFlags().Int("buffer", readflow.KB64, "Chunk size in bytes")
	rootCmd.PersistentFlags().Int64("rate", 0, "Max bytes per second, 0 means unlimited")
	rootCmd.PersistentFlags().String("mode", "park", "Read loop mode: park|busy")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logs")

	catCmd := &cobra.Command{
		Use:   "cat FILE",
		Short: "Write a file to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flow, pool, err := newFlow(cmd, args[0])
			if err != nil {
				return err
			}
			defer pool.Join()

			ctx, cancel := signalContext()
			defer cancel()

			stream, errStream := readflow.AsStream(ctx, flow, 4)
			for chunk := range stream {
				if _, err := os.Stdout.Write(chunk); err != nil {
					cancel()
					for range stream {
					}
					return err
				}
			}
			return <-errStream
		},
	}
	rootCmd.AddCommand(catCmd)

	kafkaCmd := &cobra.Command{
		Use:   "kafka FILE",
		Short: "Publish a file into a kafka topic, one message per chunk",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			brokers, _ := cmd.Flags().GetStringSlice("brokers")
			topic, _ := cmd.Flags().GetString("topic")
			window, _ := cmd.Flags().GetInt64("window")
			if topic == "" {
				return fmt.Errorf("--topic is required")
			}

			cfg := &kafka.Config{
				Brokers: brokers,
				Topic:   topic,
				Key:     args[0],
				Window:  window,
			}
			producer, err := kafka.NewProducer(cfg)
			if err != nil {
				return fmt.Errorf("failed to create kafka producer: %w", err)
			}
			defer func() {
				if err := producer.Close(); err != nil {
					log.Error().Err(err).Msg("failed to close kafka producer")
				}
			}()

			flow, pool, err := newFlow(cmd, args[0])
			if err != nil {
				return err
			}
			defer pool.Join()

			ctx, cancel := signalContext()
			defer cancel()

			sink := kafka.NewSink(cfg, producer)
			flow.Subscribe(sink)
			if err := sink.Wait(ctx); err != nil {
				return err
			}
			log.Info().Str("topic", topic).Int64("messages", sink.Messages()).Msg("file published")
			return nil
		},
	}
	kafkaCmd.Flags().StringSlice("brokers", []string{"127.0.0.1:9092"}, "Kafka brokers")
	kafkaCmd.Flags().String("topic", "", "Kafka topic")
	kafkaCmd.Flags().Int64("window", 8, "Chunks read ahead of publishing")
	rootCmd.AddCommand(kafkaCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newFlow(cmd *cobra.Command, path string) (*readflow.ReadFlow, *workerpool.WorkerPool, error) {
	buffer, _ := cmd.Flags().GetInt("buffer")
	rate, _ := cmd.Flags().GetInt64("rate")
	modeName, _ := cmd.Flags().GetString("mode")

	var mode readflow.LoopMode
	switch modeName {
	case "park":
		mode = readflow.LoopPark
	case "busy":
		mode = readflow.LoopBusy
	default:
		return nil, nil, fmt.Errorf("invalid --mode; use park|busy")
	}

	pool := workerpool.NewWorkerPool(1)
	flow := readflow.NewReadFlow(&readflow.ReadFlowCfg{
		Path:           path,
		Buffers:        readflow.FixedBuffers(buffer),
		Executor:       pool,
		Mode:           mode,
		BytesPerSecond: rate,
	})
	return flow, pool, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		defer signal.Stop(sigCh)
		select {
		case <-sigCh:
			log.Warn().Msg("interrupted, cancel read flow")
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}
