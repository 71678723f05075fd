// Package kubewatch implements a streaming client for Kubernetes-style
// watch endpoints.
//
// A watch endpoint answers a GET request with a long-lived response whose
// body is a sequence of newline-delimited JSON event records. This package
// opens that request, reassembles complete lines out of the chunked body,
// and decodes each line into an Event[T] for a caller-chosen T:
//
//	cluster, err := kubewatch.NewCluster("http://127.0.0.1:8001")
//	if err != nil {
//		log.Fatal(err)
//	}
//	stream, err := kubewatch.Events[corev1.Pod](ctx, cluster, "api/v1/pods")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer stream.Close()
//	for {
//		event, err := stream.Next()
//		...
//	}
//
// The stream is pull-based and single-threaded: nothing is read from the
// network until the caller asks for the next event, and nothing is retried
// internally. Reconnecting after the server closes the stream is the
// caller's decision.
package kubewatch
