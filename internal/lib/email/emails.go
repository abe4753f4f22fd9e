package email

import "strconv"

// SendPostPublishedEmail tells the notification recipient that a post went live.
func (c *Client) SendPostPublishedEmail(to string, postID int64, title string) error {
	data := map[string]string{
		"PostID":    strconv.FormatInt(postID, 10),
		"PostTitle": title,
	}

	return c.SendEmail(
		to,
		"New post published: "+title,
		TemplatePostPublished,
		data,
	)
}
