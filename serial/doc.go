// Package serial opens the serial line a Minitel is plugged into.
//
// A Minitel talks 7 data bits, even parity and one stop bit at 300, 1200,
// 4800 or 9600 bauds, without flow control. Channel is the byte-oriented
// duplex view of such a line used by the minitel package: single byte
// reads bounded by a read timeout, writes, a flush that waits for the
// output to leave the UART, and live rate changes.
//
// Two drivers are available:
//
//   - DriverTermios (Linux only) configures the tty through termios ioctls
//     and changes the rate in place.
//   - DriverPortable uses github.com/jacobsa/go-serial and reopens the
//     device to change the rate.
package serial
