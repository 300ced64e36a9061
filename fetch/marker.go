package fetch

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"strings"

	citehttp "github.com/seaward/citetrack/http"
)

// Marker converts a fetch failure into the placeholder content recorded
// for that citation. Markers all share the "Error: " prefix so failed
// citations can be recognized (and skipped during matching) after a
// round trip through storage.
func Marker(err error) string {
	var statusErr *citehttp.StatusError
	if errors.As(err, &statusErr) {
		return fmt.Sprintf("Error: HTTP %d", statusErr.StatusCode)
	}

	if isTimeout(err) {
		return "Error: Request timed out"
	}

	if strings.Contains(err.Error(), "stopped after") && strings.Contains(err.Error(), "redirects") {
		return "Error: Too many redirects"
	}

	if isTLSFailure(err) {
		return "Error: SSL verification failed"
	}

	return "Error: " + err.Error()
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func isTLSFailure(err error) bool {
	var certErr *tls.CertificateVerificationError
	if errors.As(err, &certErr) {
		return true
	}
	var unknownAuthority x509.UnknownAuthorityError
	if errors.As(err, &unknownAuthority) {
		return true
	}
	var hostnameErr x509.HostnameError
	if errors.As(err, &hostnameErr) {
		return true
	}
	var invalidCert x509.CertificateInvalidError
	return errors.As(err, &invalidCert)
}
