package echo

import (
	"fmt"
	"io"
	"net"

	"github.com/lni/dragonboat/v4/logger"
	"github.com/spf13/cobra"

	cmdUtil "github.com/docwire/docwire/cmd/util"
	"github.com/docwire/docwire/driver/common"
	"github.com/docwire/docwire/driver/wire"
)

var Logger = logger.GetLogger("echo")

var (
	// EchoCmd runs a loopback reply server for testing the client transport
	EchoCmd = &cobra.Command{
		Use:   "echo",
		Short: "Run a loopback reply server",
		Long: cmdUtil.WrapString("Listens for framed request messages and answers each with a " +
			"reply correlated to the request id, echoing the request body back as the reply " +
			"body. Intended as a counterpart for the ping command and for manual testing."),
		RunE: runEcho,
	}
)

func init() {
	cobra.OnInitialize(cmdUtil.InitClientConfig)

	EchoCmd.Flags().String("listen", "localhost:27017", cmdUtil.WrapString("Address to listen on"))
	EchoCmd.Flags().String("log-level", "info", cmdUtil.WrapString("Log level (debug, info, warn, error)"))
}

func runEcho(cmd *cobra.Command, _ []string) error {
	if err := cmdUtil.BindCommandFlags(cmd); err != nil {
		return err
	}

	logLevel, err := cmd.Flags().GetString("log-level")
	if err != nil {
		return err
	}
	if err := common.InitLoggers(logLevel); err != nil {
		return err
	}

	listenAddr, err := cmd.Flags().GetString("listen")
	if err != nil {
		return err
	}

	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", listenAddr, err)
	}

	Logger.Infof("echo server listening at %s", listener.Addr())

	// Accept connections
	for {
		netConn, err := listener.Accept()
		if err != nil {
			Logger.Errorf("accept error: %v", err)
			continue
		}

		// Handle the connection in a goroutine
		go handleConnection(netConn)
	}
}

// handleConnection answers every request frame with a correlated reply frame
// carrying the request body
func handleConnection(netConn net.Conn) {
	defer netConn.Close()

	var replySeq int32
	headerBuf := make([]byte, wire.RequestHeaderLength)

	for {
		if _, err := io.ReadFull(netConn, headerBuf); err != nil {
			if err != io.EOF {
				Logger.Debugf("%s read error: %v", netConn.RemoteAddr(), err)
			}
			return
		}

		header, err := wire.ParseRequestHeader(headerBuf)
		if err != nil {
			Logger.Warningf("%s sent a malformed request: %v", netConn.RemoteAddr(), err)
			return
		}

		// The declared length is client-controlled; never allocate beyond the
		// limit the driver itself accepts
		if header.MessageLength > common.DefaultMaxMessageLength {
			Logger.Warningf("%s declared an oversized request of %d bytes", netConn.RemoteAddr(), header.MessageLength)
			return
		}

		body := make([]byte, header.MessageLength-wire.RequestHeaderLength)
		if _, err := io.ReadFull(netConn, body); err != nil {
			Logger.Debugf("%s read error: %v", netConn.RemoteAddr(), err)
			return
		}

		documents := int32(0)
		if len(body) > 0 {
			documents = 1
		}

		replySeq++
		reply := wire.AppendReplyHeader(nil, wire.ReplyHeader{
			MessageLength:  int32(wire.ReplyHeaderLength + len(body)),
			RequestID:      replySeq,
			ResponseTo:     header.RequestID,
			NumberReturned: documents,
		})
		reply = append(reply, body...)

		if _, err := netConn.Write(reply); err != nil {
			Logger.Debugf("%s write error: %v", netConn.RemoteAddr(), err)
			return
		}
	}
}
