// Package minitel drives a Minitel videotex terminal over a serial line.
//
// A Minitel link owns two goroutines: a receiver copying every byte read
// from the line into an ingress queue, and a transmitter writing the bytes
// of an egress queue to the line. Application code never touches the line
// directly; it sends sequences, receives keyboard input and issues calls.
//
// # Calls
//
// A call sends a protocol command and collects its acknowledgement:
//
//  1. the ingress queue is drained so that only bytes arriving after the
//     command are seen,
//  2. the command is queued and the call waits for the transmitter to
//     write it out,
//  3. up to n reply bytes are read, each waiting at most the reply timeout.
//
// A timeout never fails a call: the returned sequence is simply shorter
// than requested. Negotiations built on calls (SetMode, DetectSpeed,
// SetSpeed, Identify, ConfigureKeyboard, Echo) interpret the reply length
// and contents and report a boolean outcome.
//
// Send only queues bytes. Flush waits until everything queued so far has
// been written, and Close drains the egress queue for at most the close
// timeout.
//
// # Example
//
//	link, err := minitel.Open(ctx, serialCfg, nil)
//	if err != nil {
//	    return err
//	}
//	defer link.Close()
//
//	link.DetectSpeed()
//	capability := link.Identify()
//	if capability.MaxBaud >= 4800 {
//	    _, _ = link.SetSpeed(4800)
//	}
//	_ = link.Clear(minitel.ClearAll)
//	_ = link.Send(sequence.Text("Bonjour à tous"))
package minitel
