package ping

import (
	"fmt"
	"time"

	"github.com/rcrowley/go-metrics"
	"github.com/spf13/cobra"

	cmdUtil "github.com/docwire/docwire/cmd/util"
	"github.com/docwire/docwire/driver/buffer"
	"github.com/docwire/docwire/driver/common"
	"github.com/docwire/docwire/driver/conn"
	"github.com/docwire/docwire/driver/wire"
	"github.com/docwire/docwire/lib/stats"
)

var (
	// PingCmd measures round-trip latency against a wire-compatible endpoint
	PingCmd = &cobra.Command{
		Use:   "ping",
		Short: "Measure round-trip latency against a wire endpoint",
		Long: cmdUtil.WrapString("Connects to the given endpoint, sends framed no-op request " +
			"messages and waits for the correlated replies. The endpoint must speak the reply " +
			"framing, e.g. a server or the built-in echo command."),
		RunE: runPing,
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(cmdUtil.InitClientConfig)

	// Add common connection flags
	cmdUtil.SetupConnectionFlags(PingCmd)

	PingCmd.Flags().Int("count", 10, cmdUtil.WrapString("Number of round trips to perform"))
	PingCmd.Flags().Int("interval", 0, cmdUtil.WrapString("Pause between round trips in milliseconds"))
}

func runPing(cmd *cobra.Command, _ []string) error {
	// Bind command flags to viper
	if err := cmdUtil.BindCommandFlags(cmd); err != nil {
		return err
	}

	if err := common.InitLoggers(cmdUtil.GetLogLevel()); err != nil {
		return err
	}

	count, err := cmd.Flags().GetInt("count")
	if err != nil {
		return err
	}
	intervalMs, err := cmd.Flags().GetInt("interval")
	if err != nil {
		return err
	}

	// Dial the configured transport
	stream, err := cmdUtil.GetStream()
	if err != nil {
		return err
	}

	source := buffer.NewPooledSource()
	connection := conn.New(stream, source)
	defer connection.Close()

	maxMessageLength := cmdUtil.GetMaxMessageLength()

	timer := metrics.NewTimer()
	histogram := stats.NewLatencyHistogram()

	for i := 0; i < count; i++ {
		requestID := wire.NextRequestID()

		if err := connection.SendMessage(wire.FrameRequest(requestID, wire.OpQuery, nil)); err != nil {
			return err
		}

		response, err := connection.ReceiveMessage(conn.ResponseSettings{
			ResponseTo:       requestID,
			MaxMessageLength: maxMessageLength,
		})
		if err != nil {
			return err
		}

		timer.Update(response.Elapsed)
		histogram.AddSample(response.Elapsed)

		fmt.Printf("reply from %s: id=%d documents=%d time=%v\n",
			connection.Address(), response.Header.ResponseTo, response.Header.NumberReturned, response.Elapsed)

		response.Release(source)

		if intervalMs > 0 && i < count-1 {
			time.Sleep(time.Duration(intervalMs) * time.Millisecond)
		}
	}

	// Summary
	fmt.Printf("\n%d round trips to %s\n", histogram.Count(), connection.Address())
	fmt.Printf("  %-8s: %v\n", "min", time.Duration(timer.Min()))
	fmt.Printf("  %-8s: %v\n", "max", time.Duration(timer.Max()))
	fmt.Printf("  %-8s: %v\n", "mean", time.Duration(int64(timer.Mean())))
	fmt.Printf("  %-8s: %v\n", "p50", histogram.PercentileEstimate(50))
	fmt.Printf("  %-8s: %v\n", "p95", histogram.PercentileEstimate(95))
	fmt.Printf("  %-8s: %v\n", "p99", histogram.PercentileEstimate(99))

	return nil
}
