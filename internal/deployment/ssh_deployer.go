package deployment

import (
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/ssh"
)

// SSHDeployer uploads the timeline JSON artifact to a web host via SCP.
// The target is given as user@host:path; authentication uses a private key
// file next to the binary.
type SSHDeployer struct {
	keyPath   string
	deployURL string
}

// NewSSHDeployer creates a deployer for the given user@host:path target
func NewSSHDeployer(deployURL, keyPath string) *SSHDeployer {
	if keyPath == "" {
		keyPath = "deploy.pem"
	}
	return &SSHDeployer{
		keyPath:   keyPath,
		deployURL: deployURL,
	}
}

// parseDeployURL splits a deploy URL of the form user@host:path
func (d *SSHDeployer) parseDeployURL() (user, host, remotePath string, err error) {
	userRest := strings.SplitN(d.deployURL, "@", 2)
	if len(userRest) != 2 {
		return "", "", "", fmt.Errorf("invalid deploy URL %q: expected user@host:path", d.deployURL)
	}

	hostPath := strings.SplitN(userRest[1], ":", 2)
	if len(hostPath) != 2 {
		return "", "", "", fmt.Errorf("invalid deploy URL %q: expected user@host:path", d.deployURL)
	}

	return userRest[0], hostPath[0], hostPath[1], nil
}

// connect dials the SSH server using the configured private key
func (d *SSHDeployer) connect(user, host string) (*ssh.Client, error) {
	keyData, err := os.ReadFile(d.keyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read SSH key file %s: %w", d.keyPath, err)
	}

	signer, err := ssh.ParsePrivateKey(keyData)
	if err != nil {
		return nil, fmt.Errorf("failed to parse SSH private key: %w", err)
	}

	clientConfig := &ssh.ClientConfig{
		User: user,
		Auth: []ssh.AuthMethod{
			ssh.PublicKeys(signer),
		},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), // In production, use proper host key verification
		Timeout:         30 * time.Second,
	}

	client, err := ssh.Dial("tcp", net.JoinHostPort(host, "22"), clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SSH server %s: %w", host, err)
	}

	return client, nil
}

// Deploy uploads localPath into the remote directory via SCP, keeping the
// local file's base name. A fresh connection is made per deploy; the update
// cadence is minutes, so connection reuse buys nothing.
func (d *SSHDeployer) Deploy(localPath string) error {
	user, host, remotePath, err := d.parseDeployURL()
	if err != nil {
		return err
	}

	client, err := d.connect(user, host)
	if err != nil {
		return err
	}
	defer client.Close()

	localFile, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("failed to open local file %s: %w", localPath, err)
	}
	defer localFile.Close()

	fileInfo, err := localFile.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat local file: %w", err)
	}

	session, err := client.NewSession()
	if err != nil {
		return fmt.Errorf("failed to create SSH session: %w", err)
	}
	defer session.Close()

	filename := filepath.Base(localPath)
	remoteFilePath := filepath.Join(remotePath, filename)

	stdin, err := session.StdinPipe()
	if err != nil {
		return fmt.Errorf("failed to get stdin pipe: %w", err)
	}

	if err := session.Start(fmt.Sprintf("scp -t %s", remoteFilePath)); err != nil {
		return fmt.Errorf("failed to start SCP session: %w", err)
	}

	// SCP sink protocol: header, content, zero-byte end marker
	header := fmt.Sprintf("C0644 %d %s\n", fileInfo.Size(), filename)
	if _, err := stdin.Write([]byte(header)); err != nil {
		return fmt.Errorf("failed to write SCP header: %w", err)
	}

	if _, err := io.Copy(stdin, localFile); err != nil {
		return fmt.Errorf("failed to copy file content: %w", err)
	}

	if _, err := stdin.Write([]byte{0}); err != nil {
		return fmt.Errorf("failed to write SCP end marker: %w", err)
	}

	stdin.Close()
	if err := session.Wait(); err != nil {
		return fmt.Errorf("SCP session failed: %w", err)
	}

	log.Info().
		Str("local_path", localPath).
		Str("remote_path", remoteFilePath).
		Int64("size", fileInfo.Size()).
		Msg("Successfully deployed file via SCP")

	return nil
}
