// Package dnb provides a client for the URN service API of the German
// National Library (DNB).
//
// The service resolves and registers persistent identifiers (URNs) within
// the urn:nbn namespaces. This package knows the paths and payload shapes of
// its v2 REST API and maps every response onto typed values or errors.
//
// # Usage
//
// Create a client with your base URL and credentials:
//
//	logger := zerolog.New(os.Stdout)
//	client, err := dnb.NewClient(
//		dnb.SandboxBaseURL,
//		"username",
//		"password",
//		logger,
//		dnb.WithTimeout(10*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ctx := context.Background()
//	exists, err := client.URNExists(ctx, "urn:nbn:de:0030-drops-177320")
//
//	urls, err := client.GetURLs(ctx, "urn:nbn:de:0030-drops-177320", false)
//
// URL arguments accept any urlrecord.Input:
//
//	client.AddURL(ctx, urn, urlrecord.RawAddress("https://example.org/doc"))
//	client.RegisterURN(ctx, urn, urlrecord.Collection{
//		urlrecord.WithPriority("https://example.org/a", 1),
//		urlrecord.RawAddress("https://example.org/b"),
//	})
//
// # Error Handling
//
// Every operation performs exactly one request (SetURNSuccessor may perform a
// lookup first) and reports failures through its error:
//
//   - *TransportError: no response was received (errors.Is ErrTransport)
//   - *APIError: the status was not the one the operation expects
//   - *DecodeError: a 2xx response whose body is not valid JSON (errors.Is ErrDecode)
//   - *SuccessorLookupError: the canonical link of a successor could not be found
//   - *urlrecord.InputError: a URL argument could not be normalized
//
// StatusCode extracts the HTTP status from an error and ErrorMessage renders
// it with the "!! ERROR " marker:
//
//	if _, err := client.DeleteURL(ctx, urn, url); err != nil {
//		fmt.Println(dnb.ErrorMessage(err))
//		var apiErr *dnb.APIError
//		if errors.As(err, &apiErr) && apiErr.IsNotFound() {
//			// nothing to delete
//		}
//	}
//
// The client does not retry, cache or rate limit.
package dnb
