// Package publish delivers notifications to the external publish service.
//
// The Publisher interface hides the transport; SNSPublisher implements it on
// top of the AWS SDK. Destinations are looked up from a JSON topic map of the
// form {"events":"arn:aws:sns:..."}, which EnvTopicSource re-reads on every
// call so that a malformed value surfaces as a per-request error.
//
//	pub, err := publish.NewSNSPublisher(ctx, "us-west-2")
//	src := publish.EnvTopicSource(os.Getenv, publish.TopicsEnvVar, "events")
//
//	arn, err := src()
//	receipt, err := pub.Publish(ctx, publish.Message{TopicARN: arn, Body: "healthcheck"})
package publish
