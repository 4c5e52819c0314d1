// Package convert implements the conversion pipeline against the remote
// image service. It verifies the submission with the bot-check provider,
// uploads the source image as a multipart request, and saves the converted
// result under the downloads directory. A single conversion runs at a time.
package convert
