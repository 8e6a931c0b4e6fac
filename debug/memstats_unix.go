//go:build unix

package debug

import "golang.org/x/sys/unix"

// processRSS returns the peak resident set size reported by getrusage.
// Linux reports kilobytes, darwin bytes.
func processRSS() (uint64, error) {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return 0, err
	}
	rss := uint64(ru.Maxrss)
	if maxrssInKilobytes {
		rss *= 1024
	}
	return rss, nil
}
