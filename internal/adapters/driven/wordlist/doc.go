// Package wordlist reads password lists from disk.
package wordlist
